package handler

import (
	"github.com/inkwell/blog-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreatePostInput(req createPostRequest) ports.CreatePostInput {
	return ports.CreatePostInput{
		Title:   req.Title,
		Summary: req.Summary,
		Content: req.Content,
		Status:  req.Status,
		OwnerID: req.OwnerID,
	}
}

func toUpdatePostInput(req updatePostRequest) ports.UpdatePostInput {
	in := ports.UpdatePostInput{
		Title:   req.Title,
		Summary: req.Summary,
		Content: req.Content,
		Status:  req.Status,
		OwnerID: req.OwnerID,
	}
	if req.Owner != nil {
		in.Owner = &ports.OwnerInput{
			Name:  req.Owner.Name,
			Phone: req.Owner.Phone,
			Email: req.Owner.Email,
		}
	}
	return in
}
