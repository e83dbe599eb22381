package contract

// IUUIDGenerator produces unique identifiers, used for reconciler lock
// ownership tokens.
type IUUIDGenerator interface {
	NewUUID() string
}
