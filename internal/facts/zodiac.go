package facts

type Sign int

const (
	Aries Sign = iota + 1
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = map[Sign]string{
	Aries:       "Aries",
	Taurus:      "Taurus",
	Gemini:      "Gemini",
	Cancer:      "Cancer",
	Leo:         "Leo",
	Virgo:       "Virgo",
	Libra:       "Libra",
	Scorpio:     "Scorpio",
	Sagittarius: "Sagittarius",
	Capricorn:   "Capricorn",
	Aquarius:    "Aquarius",
	Pisces:      "Pisces",
}

// Knowledge base entity keys, category "cung-hoang-dao".
var signKnowledgeNames = map[Sign]string{
	Aries:       "Bạch Dương",
	Taurus:      "Kim Ngưu",
	Gemini:      "Song Tử",
	Cancer:      "Cự Giải",
	Leo:         "Sư Tử",
	Virgo:       "Xử Nữ",
	Libra:       "Thiên Bình",
	Scorpio:     "Thiên Yết",
	Sagittarius: "Nhân Mã",
	Capricorn:   "Ma Kết",
	Aquarius:    "Bảo Bình",
	Pisces:      "Song Ngư",
}

func (s Sign) String() string {
	if name, ok := signNames[s]; ok {
		return name
	}
	return "Unknown"
}

// KnowledgeName is the Vietnamese name used as the knowledge entity key.
func (s Sign) KnowledgeName() string {
	return signKnowledgeNames[s]
}

type signBoundary struct {
	cutoff int
	before Sign
	after  Sign
}

// Indexed by month-1. A day strictly below cutoff keeps the earlier sign.
var signBoundaries = [12]signBoundary{
	{20, Capricorn, Aquarius},
	{19, Aquarius, Pisces},
	{21, Pisces, Aries},
	{20, Aries, Taurus},
	{21, Taurus, Gemini},
	{22, Gemini, Cancer},
	{23, Cancer, Leo},
	{23, Leo, Virgo},
	{23, Virgo, Libra},
	{24, Libra, Scorpio},
	{23, Scorpio, Sagittarius},
	{22, Sagittarius, Capricorn},
}

func ZodiacSign(day, month int) Sign {
	if month < 1 || month > 12 {
		return Capricorn
	}
	b := signBoundaries[month-1]
	if day < b.cutoff {
		return b.before
	}
	return b.after
}

// Derived holds the facts computed from a birth date.
type Derived struct {
	LifePath string
	Sign     Sign
}

func Derive(day, month, year int) Derived {
	return Derived{
		LifePath: LifePathNumber(day, month, year),
		Sign:     ZodiacSign(day, month),
	}
}
