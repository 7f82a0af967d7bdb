package models

// Статусы заявки на верификацию.
const (
	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusRejected = "rejected"
)

// VerificationRequest представляет заявку на верификацию личности.
// Создается один раз при отправке и дублируется в глобальный реестр
// и во вложенный список владельца. Поля решения (AdminNotes, ApprovedDate,
// RejectedDate) заполняются внешней административной частью.
type VerificationRequest struct {
	ID             string `json:"id"`                       // Идентификатор вида ver_<timestamp>_<suffix>
	UserEmail      string `json:"userEmail"`                // Электронная почта заявителя
	UserName       string `json:"userName"`                 // Имя заявителя
	DocumentType   string `json:"documentType"`             // Тип документа
	DocumentNumber string `json:"documentNumber,omitempty"` // Номер документа
	Country        string `json:"country,omitempty"`        // Страна выдачи документа
	FrontImage     string `json:"frontImage"`               // Изображение лицевой стороны
	BackImage      string `json:"backImage,omitempty"`      // Изображение обратной стороны
	SelfieImage    string `json:"selfieImage"`              // Селфи с документом
	SubmittedDate  string `json:"submittedDate"`            // Дата подачи в формате 2006-01-02
	Status         string `json:"status"`                   // Статус: pending, approved или rejected
	AdminNotes     string `json:"adminNotes,omitempty"`     // Комментарий администратора
	ApprovedDate   string `json:"approvedDate,omitempty"`   // Дата одобрения
	RejectedDate   string `json:"rejectedDate,omitempty"`   // Дата отклонения
}
