package domain

import "errors"

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a business error with a user facing (pt-BR) message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns KindInternal for anything that is not a *Error.
func KindOf(err error) ErrorKind {
	var domainErr *Error

	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}

	return KindInternal
}

// Storage level errors, translated by the services.
var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrStaleRecord     = errors.New("record state changed")
)

var (
	ErrInvalidRequest     = NewError(KindValidation, "Requisição inválida")
	ErrMissingFields      = NewError(KindValidation, "Preencha todos os campos obrigatórios")
	ErrEmailAlreadyUsed   = NewError(KindConflict, "E-mail já cadastrado")
	ErrCPFAlreadyUsed     = NewError(KindConflict, "CPF já cadastrado")
	ErrUserNotFound       = NewError(KindNotFound, "Usuário não encontrado")
	ErrWrongPassword      = NewError(KindUnauthorized, "Senha incorreta")
	ErrAccountDeactivated = NewError(KindForbidden, "Esta conta foi desativada")
	ErrInvalidImage       = NewError(KindValidation, "A imagem deve ser um arquivo PNG ou JPG")
	ErrImageRequired      = NewError(KindValidation, "Envie uma imagem")
	ErrImageTooLarge      = NewError(KindValidation, "A imagem deve ter no máximo 5MB")

	ErrActivityTypeNotFound     = NewError(KindValidation, "Tipo de atividade não encontrado")
	ErrActivityNotFound         = NewError(KindNotFound, "Atividade não encontrada")
	ErrNotActivityCreator       = NewError(KindForbidden, "Apenas o criador da atividade pode realizar esta ação")
	ErrActivityConcluded        = NewError(KindValidation, "Esta atividade já foi concluída")
	ErrActivityAlreadyConcluded = NewError(KindConflict, "Esta atividade já foi concluída")
	ErrScheduledDateInPast      = NewError(KindValidation, "A data agendada deve ser futura")
	ErrInvalidScheduledDate     = NewError(KindValidation, "Data agendada inválida")
	ErrInvalidAddress           = NewError(KindValidation, "Endereço inválido")
	ErrInvalidOrderBy           = NewError(KindValidation, "Campo de ordenação inválido")
	ErrInvalidOrder             = NewError(KindValidation, "Direção de ordenação inválida")
	ErrInvalidPagination        = NewError(KindValidation, "Parâmetros de paginação inválidos")

	ErrAlreadySubscribed        = NewError(KindConflict, "Você já está inscrito nesta atividade")
	ErrOwnActivitySubscription  = NewError(KindValidation, "Você não pode se inscrever na sua própria atividade")
	ErrNotSubscribed            = NewError(KindValidation, "Você não está inscrito nesta atividade")
	ErrParticipantNotFound      = NewError(KindNotFound, "Participante não encontrado")
	ErrParticipationNotPending  = NewError(KindConflict, "A inscrição deste participante já foi avaliada")
	ErrConfirmationCodeRequired = NewError(KindValidation, "Informe o código de confirmação")
	ErrWrongConfirmationCode    = NewError(KindValidation, "Código de confirmação incorreto")
	ErrAlreadyCheckedIn         = NewError(KindConflict, "Você já confirmou sua participação nesta atividade")
	ErrSubscriptionNotApproved  = NewError(KindForbidden, "Sua inscrição ainda não foi aprovada")
	ErrCheckedInCannotLeave     = NewError(KindConflict, "Não é possível cancelar a inscrição após o check-in")
)
