package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Password string  `json:"password" validate:"required,min=8"`
	Nombre   string  `json:"nombre"   validate:"required,min=2"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Rol      string  `json:"rol"      validate:"required,oneof=vendedor supervisor administrador"`
}

type ActualizarUsuarioRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Rol      *string `json:"rol"      validate:"omitempty,oneof=vendedor supervisor administrador"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Activo   *bool   `json:"activo"`
}

type UsuarioResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Nombre   string  `json:"nombre"`
	Email    *string `json:"email"`
	Rol      string  `json:"rol"`
	Activo   bool    `json:"activo"`
}
