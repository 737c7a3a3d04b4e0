package validation

const (
	msgNameRequired        = "Nome é obrigatório"
	msgCompanyNameRequired = "Nome da empresa é obrigatório"
	msgNameTooLong         = "Nome muito longo"
	msgEmailInvalid        = "Email inválido"
	msgEmailTooLong        = "Email muito longo"
	msgPhoneInvalid        = "Telefone inválido"
	msgPhoneTooLong        = "Telefone muito longo"
	msgURLInvalid          = "URL inválida"
	msgTextTooLong         = "Texto muito longo"
	msgInvalid             = "Valor inválido"

	// MissingResumeMessage is shown when a talent form is submitted without a resume
	MissingResumeMessage = "Currículo é obrigatório"
)

var fieldMessages = map[string]map[string]string{
	"name": {
		"required": msgNameRequired,
		"max":      msgNameTooLong,
	},
	"companyName": {
		"required": msgCompanyNameRequired,
		"max":      msgNameTooLong,
	},
	"email": {
		"required": msgEmailInvalid,
		"email":    msgEmailInvalid,
		"max":      msgEmailTooLong,
	},
	"phone": {
		"required": msgPhoneInvalid,
		"min":      msgPhoneInvalid,
		"max":      msgPhoneTooLong,
	},
	"linkedin":    {"url": msgURLInvalid},
	"website":     {"url": msgURLInvalid},
	"interest":    {"max": msgTextTooLong},
	"observation": {"max": msgTextTooLong},
}

func messageFor(field, tag string) string {
	if msg, ok := fieldMessages[field][tag]; ok {
		return msg
	}
	return msgInvalid
}
