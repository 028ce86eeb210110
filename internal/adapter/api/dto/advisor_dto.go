package dto

// AdvisorRequest representa uma pergunta ao assessor
type AdvisorRequest struct {
	Question string `json:"question" binding:"required"`
}

// AdvisorResponse traz a resposta do assessor, ou a mensagem padrão de falha
type AdvisorResponse struct {
	Answer   string `json:"answer"`
	Fallback bool   `json:"fallback"`
}
