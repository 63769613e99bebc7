package dto

type CrearProyectoRequest struct {
	Nombre       string  `json:"nombre"       validate:"required,min=3,max=150"`
	Descripcion  *string `json:"descripcion"`
	Direccion    *string `json:"direccion"    validate:"omitempty,max=250"`
	Ciudad       *string `json:"ciudad"       validate:"omitempty,max=100"`
	CodigoPostal *string `json:"codigo_postal" validate:"omitempty,max=10"`
	Estado       string  `json:"estado"       validate:"omitempty,oneof=ACTIVO PAUSADO TERMINADO"`
}

type ActualizarProyectoRequest struct {
	Nombre       *string `json:"nombre"       validate:"omitempty,min=3,max=150"`
	Descripcion  *string `json:"descripcion"`
	Direccion    *string `json:"direccion"    validate:"omitempty,max=250"`
	Ciudad       *string `json:"ciudad"       validate:"omitempty,max=100"`
	CodigoPostal *string `json:"codigo_postal" validate:"omitempty,max=10"`
	Estado       *string `json:"estado"       validate:"omitempty,oneof=ACTIVO PAUSADO TERMINADO"`
	Activo       *bool   `json:"activo"`
}

type ProyectoFilter struct {
	Activo string `form:"activo,default=true"` // true | false | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProyectoResponse struct {
	ID           string  `json:"id"`
	Nombre       string  `json:"nombre"`
	Descripcion  *string `json:"descripcion"`
	Direccion    *string `json:"direccion"`
	Ciudad       *string `json:"ciudad"`
	CodigoPostal *string `json:"codigo_postal"`
	Estado       string  `json:"estado"`

	// Inventory counters, maintained on every terreno state change.
	TotalTerrenos       int `json:"total_terrenos"`
	TerrenosDisponibles int `json:"terrenos_disponibles"`
	TerrenosApartados   int `json:"terrenos_apartados"`
	TerrenosVendidos    int `json:"terrenos_vendidos"`

	Activo    bool   `json:"activo"`
	CreatedAt string `json:"created_at"`
}

type ProyectoListResponse struct {
	Data  []ProyectoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
