package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptbr_translations "github.com/go-playground/validator/v10/translations/pt_BR"

	"activityapp/internal/core/model/response"
	"activityapp/internal/core/util"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	ptBR := pt_BR.New()
	uni := ut.New(ptBR, ptBR)

	var found bool
	Translator, found = uni.GetTranslator("pt_BR")

	if !found {
		panic("translator pt_BR not found")
	}

	if err := ptbr_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	Validator.RegisterTagNameFunc(tagName)

	if err := Validator.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return util.ValidCPF(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

// tagName reports fields by their json (or form) name.
func tagName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]

		if name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}

func register(tag, text string, params func(fe validator.FieldError) []string) {
	Validator.RegisterTranslation(tag, Translator, func(ut ut.Translator) error {
		return ut.Add(tag, text, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, params(fe)...)
		return t
	})
}

func addCustomTranslations() {
	field := func(fe validator.FieldError) []string {
		return []string{getFieldName(fe.Field())}
	}

	fieldAndParam := func(fe validator.FieldError) []string {
		return []string{getFieldName(fe.Field()), fe.Param()}
	}

	register("required", "{0} é obrigatório", field)
	register("min", "{0} deve ter no mínimo {1} caracteres", fieldAndParam)
	register("max", "{0} deve ter no máximo {1} caracteres", fieldAndParam)
	register("email", "{0} deve ser um email válido", field)
	register("cpf", "{0} inválido", field)
	register("uuid", "{0} deve ser um identificador válido", field)
	register("lte", "{0} deve ser no máximo {1}", fieldAndParam)
	register("gte", "{0} deve ser no mínimo {1}", fieldAndParam)
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"name":             "Nome",
		"email":            "Email",
		"cpf":              "CPF",
		"password":         "Senha",
		"title":            "Título",
		"description":      "Descrição",
		"typeId":           "Tipo de atividade",
		"typeIds":          "Preferências",
		"scheduledDate":    "Data agendada",
		"participantId":    "Participante",
		"approved":         "Aprovação",
		"confirmationCode": "Código de confirmação",
		"page":             "Página",
		"pageSize":         "Tamanho da página",
	}

	if name, exists := fieldNames[field]; exists {
		return name
	}

	return field
}

func FormatValidationErrors(err error) []response.ValidationError {
	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) {
		return nil
	}

	result := make([]response.ValidationError, 0, len(validationErrors))

	for _, fieldError := range validationErrors {
		result = append(result, response.ValidationError{
			Field:   fieldError.Field(),
			Message: fieldError.Translate(Translator),
		})
	}

	return result
}
