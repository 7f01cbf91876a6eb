package model

// DomainCallback is the JSON body the provisioning service POSTs to the
// webhook endpoint when a domain setup completes or fails. The user_id field
// name is wire format only; in process the value is a tenant ID.
type DomainCallback struct {
	UserID  string `json:"userId"`
	Domain  string `json:"domain"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	// Token echoes the provisioning token from the setup request. Older
	// provisioner versions omit it.
	Token string `json:"token,omitempty"`
}
