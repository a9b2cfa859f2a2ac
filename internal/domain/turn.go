package domain

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

const PrimingAcknowledgement = "Understood. I will follow these instructions."

type Turn struct {
	Role Role
	Text string
}

func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Text: text}
}

func ModelTurn(text string) Turn {
	return Turn{Role: RoleModel, Text: text}
}

// PrimingPair returns the synthetic exchange that carries standing instructions.
func PrimingPair(instructions string) [2]Turn {
	return [2]Turn{UserTurn(instructions), ModelTurn(PrimingAcknowledgement)}
}
