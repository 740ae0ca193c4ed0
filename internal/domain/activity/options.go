package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	Subject string
	Limit   int
}
