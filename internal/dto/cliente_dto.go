package dto

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=100"`
	Apellido  string  `json:"apellido"  validate:"required,min=2,max=100"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Telefono  *string `json:"telefono"  validate:"omitempty,min=7,max=20"`
	Direccion *string `json:"direccion" validate:"omitempty,max=250"`
	Ciudad    *string `json:"ciudad"    validate:"omitempty,max=100"`
	RFC       *string `json:"rfc"       validate:"omitempty,min=10,max=15"`
	Notas     *string `json:"notas"`
}

type ActualizarClienteRequest struct {
	Nombre        *string `json:"nombre"    validate:"omitempty,min=2,max=100"`
	Apellido      *string `json:"apellido"  validate:"omitempty,min=2,max=100"`
	Email         *string `json:"email"     validate:"omitempty,email"`
	Telefono      *string `json:"telefono"  validate:"omitempty,min=7,max=20"`
	Direccion     *string `json:"direccion" validate:"omitempty,max=250"`
	Ciudad        *string `json:"ciudad"    validate:"omitempty,max=100"`
	RFC           *string `json:"rfc"       validate:"omitempty,min=10,max=15"`
	EstadoCliente *string `json:"estado_cliente" validate:"omitempty,oneof=PROSPECTO ACTIVO INACTIVO"`
	Notas         *string `json:"notas"`
	Activo        *bool   `json:"activo"`
}

type ClienteFilter struct {
	// Matches nombre, apellido or RFC, case-insensitive.
	Buscar        string `form:"buscar"`
	EstadoCliente string `form:"estado_cliente" validate:"omitempty,oneof=PROSPECTO ACTIVO INACTIVO"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ClienteResponse struct {
	ID            string  `json:"id"`
	Nombre        string  `json:"nombre"`
	Apellido      string  `json:"apellido"`
	Email         *string `json:"email"`
	Telefono      *string `json:"telefono"`
	Direccion     *string `json:"direccion"`
	Ciudad        *string `json:"ciudad"`
	RFC           *string `json:"rfc"`
	EstadoCliente string  `json:"estado_cliente"`
	Notas         *string `json:"notas"`
	Activo        bool    `json:"activo"`
	CreatedAt     string  `json:"created_at"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
