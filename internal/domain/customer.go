package domain

// CustomerIdentity is the processor's durable record for a payer. The ID is
// processor-assigned, stable and unique; this service never mutates or
// deletes it.
type CustomerIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
