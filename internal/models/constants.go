// Package models contains wire-level constants shared by the chat client and
// the recommendation server.
package models

// Endpoints of the recommendation server
const (
	EndpointIndex    = "/"
	EndpointResponse = "/get_response"
	EndpointStatic   = "/static"
)

// FieldUserInput is the form field carrying the user's message.
const FieldUserInput = "user_input"

// ContentTypeForm is the content type of the outbound request.
const ContentTypeForm = "application/x-www-form-urlencoded"

// DefaultHeaders returns the headers sent with every message. Nothing beyond
// the content type: no auth, no session.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": ContentTypeForm,
	}
}
