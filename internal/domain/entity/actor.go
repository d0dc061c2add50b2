package entity

// ActorContext identifica quién ejecuta una operación mutante (para auditoría).
// Se pasa explícitamente a cada caso de uso; nunca se lee de estado global.
type ActorContext struct {
	UserID    string
	IP        string
	UserAgent string
}

// SystemActor actor usado por procesos internos (CLI, barridos programados).
var SystemActor = ActorContext{UserID: "system"}
