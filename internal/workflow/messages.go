package workflow

import (
	"fmt"

	"github.com/artium/indicacoes-api/internal/models"
)

const (
	notificationTitle = "Indicação enviada com sucesso!"

	// SubmissionFailedMessage is shown above the form when the backend refuses the referral
	SubmissionFailedMessage = "Não foi possível enviar sua indicação. Tente novamente."
)

func article(kind models.ReferralKind) string {
	if kind == models.ReferralKindCompany {
		return "uma empresa"
	}
	return "um talento"
}

// NotificationFor builds the toast shown after kind was submitted
func NotificationFor(kind models.ReferralKind) models.Notification {
	return models.Notification{
		Title:       notificationTitle,
		Description: fmt.Sprintf("Obrigado por indicar %s. Entraremos em contato em breve.", article(kind)),
	}
}

// ConfirmationText replaces the form body while the workflow is Succeeded
func ConfirmationText(kind models.ReferralKind, organization string) string {
	return fmt.Sprintf("Obrigado por indicar %s para a %s. Nossa equipe entrará em contato em breve.", article(kind), organization)
}
