package common

// Header names understood by the account and catalog handlers. Identifiers
// travel as headers rather than path parameters.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "

	EmailHeaderName    = "email"
	PasswordHeaderName = "password"
	UserIDHeaderName   = "user_id"
	RecipeIDHeaderName = "recipe_id"
)
