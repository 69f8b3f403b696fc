package profile

import (
	"time"

	"github.com/google/uuid"
)

// Gender описывает пол атлета в «проводном» (wire) формате API и БД.
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

// GenderUIPreferNotToSay — форма значения "prefer_not_to_say", которую
// использует UI мастера (с дефисами). Нормализация в wire-форму и обратно
// выполняется в пайплайне отправки.
const GenderUIPreferNotToSay = "prefer-not-to-say"

// CommunicationChannel описывает предпочтительный канал связи с атлетом.
type CommunicationChannel string

const (
	CommunicationEmail CommunicationChannel = "email"
	CommunicationApp   CommunicationChannel = "app"
)

// MinAge — минимальный допустимый возраст атлета (полных лет) на момент
// проверки даты рождения.
const MinAge = 13

// MaxOtherSports — максимальное количество дополнительных видов спорта.
const MaxOtherSports = 5

// AthleteProfile представляет доменную модель профиля атлета.
//
// Важно: модель описывает бизнес-сущность и не зависит от деталей транспорта
// (HTTP) и конкретного представления в БД.
type AthleteProfile struct {
	ID     int64     // Уникальный идентификатор профиля
	UserID uuid.UUID // Владелец профиля (идентификатор пользователя)

	// Персональная информация
	FullName        string    // Полное имя
	AthleticName    string    // Спортивный псевдоним (опционально)
	DateOfBirth     time.Time // Дата рождения
	Gender          Gender    // Пол (wire-форма enum)
	ProfilePhotoURL string    // URL фотографии профиля
	City            string    // Город
	Country         string    // Страна
	Email           string    // Email для связи

	// Спортивная идентичность
	PrimarySport string   // Основной вид спорта (из фиксированного списка)
	OtherSports  []string // Дополнительные виды спорта (не более 5)
	Bio          string   // Короткая биография (опционально, до 500 символов)

	// Социальные сети и связь
	SocialLinks            map[string]string    // platform -> handle/URL
	Website                string               // Личный сайт (опционально)
	PreferredCommunication CommunicationChannel // Предпочтительный канал связи

	// Цели и предпочтения
	ShortTermGoals      string // Краткосрочные цели (опционально, до 300 символов)
	LongTermAspirations string // Долгосрочные стремления (опционально, до 500 символов)
	OpenToTeams         bool   // Готовность присоединяться к командам
	PrivacyConsent      bool   // Согласие с политикой конфиденциальности

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время последнего обновления
}

// Touch обновляет время последнего изменения сущности.
func (p *AthleteProfile) Touch(at time.Time) {
	p.UpdatedAt = at
}

// FormStep описывает один экран мастера создания профиля.
type FormStep struct {
	ID          int
	Title       string
	Description string
}

// FormSteps — фиксированная последовательность шагов мастера.
// Индексация шагов в состоянии мастера нулевая: шаг с ID=1 имеет индекс 0.
var FormSteps = []FormStep{
	{ID: 1, Title: "Personal Information", Description: "Tell us about yourself"},
	{ID: 2, Title: "Sporting Identity", Description: "Your athletic background"},
	{ID: 3, Title: "Social & Communication", Description: "How to connect with you"},
	{ID: 4, Title: "Goals & Preferences", Description: "Your aspirations"},
	{ID: 5, Title: "Review & Submit", Description: "Confirm your profile"},
}

// StepCount — количество шагов мастера.
const StepCount = 5

// SocialPlatform описывает поддерживаемую социальную платформу.
type SocialPlatform struct {
	Name        string
	Placeholder string
}

// SocialPlatforms — фиксированный набор платформ, для которых принимаются ссылки.
var SocialPlatforms = []SocialPlatform{
	{Name: "instagram", Placeholder: "@username"},
	{Name: "twitter", Placeholder: "@username"},
	{Name: "youtube", Placeholder: "Channel URL"},
	{Name: "tiktok", Placeholder: "@username"},
	{Name: "twitch", Placeholder: "Channel name"},
}

// SportsList — фиксированный список видов спорта, из которого выбираются
// основной и дополнительные виды.
var SportsList = []string{
	"Tennis",
	"Basketball",
	"Football",
	"Soccer",
	"Baseball",
	"Volleyball",
	"Swimming",
	"Track & Field",
	"Gymnastics",
	"Boxing",
	"MMA",
	"Wrestling",
	"Golf",
	"Cricket",
	"Rugby",
	"Hockey",
	"Badminton",
	"Table Tennis",
}

// IsKnownSport возвращает true, если спорт входит в фиксированный список.
func IsKnownSport(sport string) bool {
	for _, s := range SportsList {
		if s == sport {
			return true
		}
	}
	return false
}

// IsKnownPlatform возвращает true, если платформа входит в поддерживаемый набор.
func IsKnownPlatform(name string) bool {
	for _, p := range SocialPlatforms {
		if p.Name == name {
			return true
		}
	}
	return false
}

// ValidGender возвращает true для допустимого wire-значения пола.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	}
	return false
}

// ValidCommunication возвращает true для допустимого канала связи.
func ValidCommunication(c CommunicationChannel) bool {
	return c == CommunicationEmail || c == CommunicationApp
}

// AgeAt возвращает количество полных лет на момент at для даты рождения birth:
// разница по годам, скорректированная, если месяц/день ещё не наступили.
func AgeAt(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() ||
		(at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}
