package broken

type Half struct {
	Name string
}

var _ = MissingMapper{}
