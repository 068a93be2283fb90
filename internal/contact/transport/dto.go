// Package transport defines the contact-form wire contracts.
package transport

// ContactRequest is one contact-form submission.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

// ContactResponse acknowledges a relayed submission.
type ContactResponse struct {
	OK bool `json:"ok"`
}
