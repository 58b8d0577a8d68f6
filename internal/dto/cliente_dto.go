package dto

type CrearClienteRequest struct {
	DNI           string  `json:"dni"            validate:"required_if=TipoDocumento DNI,omitempty,len=8,numeric"`
	TipoDocumento string  `json:"tipo_documento" validate:"omitempty,oneof=DNI CE PASAPORTE"`
	Nombre        string  `json:"nombre"`
	ApellidoPat   string  `json:"apellido_pat"`
	ApellidoMat   string  `json:"apellido_mat"`
	Telefono      *string `json:"telefono"`
	Direccion     *string `json:"direccion"`
}

type ActualizarClienteRequest struct {
	DNI         *string `json:"dni" validate:"omitempty,len=8,numeric"`
	Nombre      *string `json:"nombre"`
	ApellidoPat *string `json:"apellido_pat"`
	ApellidoMat *string `json:"apellido_mat"`
	Telefono    *string `json:"telefono"`
	Direccion   *string `json:"direccion"`
}

type ClienteResponse struct {
	ID            string  `json:"id"`
	DNI           string  `json:"dni"`
	TipoDocumento string  `json:"tipo_documento"`
	Nombre        string  `json:"nombre"`
	ApellidoPat   string  `json:"apellido_pat"`
	ApellidoMat   string  `json:"apellido_mat"`
	Telefono      *string `json:"telefono"`
	Direccion     *string `json:"direccion"`
}

// ReniecResponse is the subset of the identity lookup exposed to the frontend
// for form autofill.
type ReniecResponse struct {
	Nombre      string `json:"nombre"`
	ApellidoPat string `json:"apellido_pat"`
	ApellidoMat string `json:"apellido_mat"`
}
