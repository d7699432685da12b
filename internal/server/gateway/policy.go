package gateway

// Effect is the outcome carried by a policy statement.
type Effect string

// Policy effects.
const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

const (
	policyVersion = "2012-10-17"
	invokeAction  = "execute-api:Invoke"

	// denyPrincipal is reported for every denied caller.
	denyPrincipal = "user"

	// Reasons reported for a rejected token.
	MessageExpired = "Token has expired"
	MessageInvalid = "Invalid token"
)

// Statement grants or denies invoking a single method ARN.
type Statement struct {
	Action   string `json:"Action"`
	Effect   Effect `json:"Effect"`
	Resource string `json:"Resource"`
}

// PolicyDocument is the IAM style document carried by a Policy.
type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Policy is the authorizer response handed back to the platform.
type Policy struct {
	PrincipalID    string            `json:"principalId"`
	PolicyDocument PolicyDocument    `json:"policyDocument"`
	Context        map[string]string `json:"context,omitempty"`
}

// Effect returns the effect of the single statement.
func (p *Policy) Effect() Effect {
	if len(p.PolicyDocument.Statement) == 0 {
		return EffectDeny
	}
	return p.PolicyDocument.Statement[0].Effect
}

// Allowed is shorthand for Effect() == EffectAllow.
func (p *Policy) Allowed() bool { return p.Effect() == EffectAllow }

// Message returns the diagnostic attached to a Deny, if any.
func (p *Policy) Message() string { return p.Context["message"] }

func generatePolicy(principalID string, effect Effect, resource, message string) *Policy {
	p := &Policy{
		PrincipalID: principalID,
		PolicyDocument: PolicyDocument{
			Version: policyVersion,
			Statement: []Statement{{
				Action:   invokeAction,
				Effect:   effect,
				Resource: resource,
			}},
		},
	}
	if message != "" {
		p.Context = map[string]string{"message": message}
	}
	return p
}
