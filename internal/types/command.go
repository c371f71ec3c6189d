package types

type UserLevel int

const (
	Anyone UserLevel = iota
	Moderator
)

func (u UserLevel) String() string {
	switch u {
	case Moderator:
		return "moderator"
	default:
		return "anyone"
	}
}
