// Package schema описывает формы и ограничения допустимого ввода для каждого
// логического шага мастера создания профиля атлета и формирует
// структурированные ошибки валидации.
//
// Пакет является единственным источником правды о валидности шага: и живые
// проверки шага, и предикат доступности шага в хранилище состояния
// (Store.IsStepValid) построены на одних и тех же правилах, чтобы исключить
// расхождение двух независимых реализаций.
package schema

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"athlete-app/internal/domain/profile"
)

// Коды ошибок валидации на уровне полей.
const (
	CodeRequired = "REQUIRED"
	CodeTooShort = "TOO_SHORT"
	CodeTooLong  = "TOO_LONG"
	CodeInvalid  = "INVALID"
)

// FieldError описывает ошибку валидации одного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

var (
	// urlRegex принимает «похожие на URL» значения: опциональная схема,
	// домен с TLD, опциональный путь.
	urlRegex = regexp.MustCompile(`^(https?://)?([\da-z.-]+)\.([a-z.]{2,6})([/\w .-]*)*/?$`)

	// handleRegex принимает «голые» имена пользователей социальных платформ.
	handleRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

	// nameRegex принимает только буквы и пробелы.
	nameRegex = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// validate — общий экземпляр валидатора с зарегистрированными доменными
// правилами. Экземпляр потокобезопасен и кэширует метаданные структур.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// letters_spaces: только буквы и пробелы (полное имя).
	must(v.RegisterValidation("letters_spaces", func(fl validator.FieldLevel) bool {
		return nameRegex.MatchString(fl.Field().String())
	}))

	// min_age: дата рождения даёт возраст не меньше profile.MinAge полных лет.
	must(v.RegisterValidation("min_age", func(fl validator.FieldLevel) bool {
		birth, ok := fl.Field().Interface().(time.Time)
		if !ok || birth.IsZero() {
			return false
		}
		return profile.AgeAt(birth, time.Now()) >= profile.MinAge
	}))

	// sport: значение входит в фиксированный список видов спорта.
	must(v.RegisterValidation("sport", func(fl validator.FieldLevel) bool {
		return profile.IsKnownSport(fl.Field().String())
	}))

	// handle: имя пользователя соцсети после отбрасывания ведущего "@".
	must(v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handleRegex.MatchString(strings.TrimPrefix(fl.Field().String(), "@"))
	}))

	// url_shape: значение похоже на URL.
	must(v.RegisterValidation("url_shape", func(fl validator.FieldLevel) bool {
		return urlRegex.MatchString(fl.Field().String())
	}))

	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// codeForTag переводит тег валидатора в машинный код ошибки.
func codeForTag(tag string) string {
	switch tag {
	case "required":
		return CodeRequired
	case "min":
		return CodeTooShort
	case "max":
		return CodeTooLong
	default:
		return CodeInvalid
	}
}

// collect превращает ошибку валидатора в список FieldError.
// names задаёт соответствие имени поля структуры имени поля на проводе,
// messages — человекочитаемые сообщения по ключу "Поле.тег".
func collect(err error, names map[string]string, messages map[string]string) []FieldError {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error(), Code: CodeInvalid}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// Ошибки элементов слайса (dive) приходят с именем вида "Field[2]" —
		// приводим их к имени самого поля.
		name := fe.Field()
		if i := strings.IndexByte(name, '['); i > 0 {
			name = name[:i]
		}

		field := names[name]
		if field == "" {
			field = name
		}
		msg := messages[name+"."+fe.Tag()]
		if msg == "" {
			msg = "Invalid value"
		}
		out = append(out, FieldError{Field: field, Message: msg, Code: codeForTag(fe.Tag())})
	}
	return out
}

// ValidateStep выполняет полную валидацию шага по содержимому черновика.
// Шаг валиден тогда и только тогда, когда список ошибок пуст.
func ValidateStep(step int, d *profile.Draft) []FieldError {
	switch step {
	case 0:
		return ValidatePersonalInfo(d)
	case 1:
		return ValidateSportingIdentity(d)
	case 2:
		return ValidateSocialCommunication(d)
	case 3:
		return ValidateGoalsPreferences(d)
	default:
		return nil
	}
}

// StepComplete — предикат «обязательное подмножество полей шага заполнено».
// Именно он управляет доступностью перехода к шагу по клику (Store.IsStepValid
// и Store.CanProceedToStep), независимо от живой валидации формы.
func StepComplete(step int, d *profile.Draft) bool {
	switch step {
	case 0:
		return strPresent(d.FullName) &&
			d.DateOfBirth != nil && !d.DateOfBirth.IsZero() &&
			strPresent(d.Gender) &&
			d.Location != nil && d.Location.City != "" && d.Location.Country != "" &&
			strPresent(d.Email) &&
			strPresent(d.ProfilePhotoURL)
	case 1:
		return strPresent(d.PrimarySport)
	case 2:
		return strPresent(d.PreferredCommunication)
	case 3:
		return d.OpenToTeams != nil && d.PrivacyConsent != nil && *d.PrivacyConsent
	default:
		return false
	}
}

func strPresent(s *string) bool {
	return s != nil && *s != ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
