package models

import "time"

// Role is a staff account's access level.
type Role string

const (
	RoleAdministrador Role = "administrador"
	RoleGerente       Role = "gerente"
	RoleFuncionario   Role = "funcionario"
)

// Usuario is a staff account.
type Usuario struct {
	ID          int       `json:"id_usuario"`
	Username    string    `json:"username"`
	Nome        string    `json:"nome"`
	Role        Role      `json:"role"`
	Ativo       bool      `json:"ativo"`
	DataCriacao time.Time `json:"data_criacao"`
}

// CreateUsuarioRequest is the payload for creating a staff account.
type CreateUsuarioRequest struct {
	Username string `json:"username"`
	Nome     string `json:"nome"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// UpdateUsuarioRequest carries only the fields being changed.
type UpdateUsuarioRequest struct {
	Nome     *string `json:"nome,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	Ativo    *bool   `json:"ativo,omitempty"`
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Role      Role `json:"role"`
	UsuarioID int  `json:"id_usuario"`
}
