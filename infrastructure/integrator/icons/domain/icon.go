package domain

// Icon é a resposta do serviço de ícones para um termo
type Icon struct {
	URL string `json:"url"`
}
