package ports

// RegistryPort resolves distribution variants by display name
type RegistryPort interface {
	// Lookup fails with core.ErrDistributionNotFound for unknown names
	Lookup(name string) (Variant, error)

	// Names returns the display names in registration order
	Names() []string

	// Variants returns the variants in registration order
	Variants() []Variant
}
