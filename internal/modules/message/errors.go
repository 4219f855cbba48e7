package message

import "designmarket/internal/pkg/apperr"

var (
	ErrMessageNotFound     = apperr.New(apperr.ErrNotFound, "MESSAGE_NOT_FOUND", "Message not found")
	ErrDesignNotFound      = apperr.New(apperr.ErrNotFound, "DESIGN_NOT_FOUND", "Design not found")
	ErrReceiverNotFound    = apperr.New(apperr.ErrNotFound, "RECEIVER_NOT_FOUND", "Receiver not found")
	ErrReceiverNotInThread = apperr.New(apperr.ErrPermissionDenied, "RECEIVER_NOT_ALLOWED",
		"Messages about a design go to its designer or to someone already in the thread")
	ErrSelfMessage  = apperr.Validation("receiver_id", "cannot send a message to yourself")
	ErrEmptyContent = apperr.Validation("content", "this field is required")
)
