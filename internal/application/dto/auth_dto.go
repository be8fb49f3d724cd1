package dto

// SignUpRequest registro de un cliente del storefront.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
}

// SignInRequest inicio de sesión. NewPassword solo se envía para completar un
// desafío de rotación de contraseña pendiente.
type SignInRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"new_password,omitempty"`
}

// IdentityResponse identidad resuelta. Null en el JSON cuando no hay sesión.
type IdentityResponse struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// SignInResponse token de sesión más la identidad resuelta.
type SignInResponse struct {
	Token    string           `json:"token"`
	Identity IdentityResponse `json:"identity"`
}

// SessionResponse estado de sesión actual.
type SessionResponse struct {
	Identity *IdentityResponse `json:"identity"`
}
