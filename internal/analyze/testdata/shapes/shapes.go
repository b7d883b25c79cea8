package shapes

type Owner string

type Account struct {
	ID     int64
	Tags   []string
	Owner  *Owner
	secret string
}

type Wrapper struct {
	Account
	Note string
}

type Alias = Account
