package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/internal/facts"
	"github.com/sandevgo/sorcerer/internal/service/prompt"
	"github.com/sandevgo/sorcerer/pkg/log"
)

const (
	chatMaxTokens = 1000
	chatTemp      = 0.75

	GreetingReply   = "Chào bạn! SorcererXstreme đã sẵn sàng. Hôm nay bạn muốn khám phá điều gì về vận mệnh hay những lá bài?"
	GreetingSummary = "Chào hỏi khởi đầu"

	noMainStar = "Vô Chính Diệu"
)

// Chat answers free-form questions with session memory. It is never cached.
type Chat struct {
	*Deps
}

func NewChat(d *Deps) *Chat {
	return &Chat{Deps: d}
}

func (h *Chat) Handle(ctx context.Context, req *core.Request) (core.Response, error) {
	in, err := newChatRequest(req)
	if err != nil {
		return core.Response{}, err
	}

	intent := facts.AnalyzeChat(in.Question, in.Cards)
	if intent.Greeting {
		h.Memory.Append(ctx, core.Turn{
			SessionID: in.SessionID,
			Question:  in.Question,
			Reply:     GreetingReply,
			Summary:   GreetingSummary,
		})
		return chatResponse(in.SessionID, GreetingReply), nil
	}

	subject := h.collectSubject(ctx, intent, in)
	snippets := h.Retriever.Retrieve(ctx, subject.keywords)
	history := h.Memory.History(ctx, in.SessionID)

	p := prompt.Chat{
		Today:     prompt.Day(h.now()),
		Context:   subject.String(),
		Knowledge: snippets,
		History:   history,
		Question:  prompt.Truncate(in.Question, h.MaxQuestionChars),
	}.Build()

	gen := h.Gen.Generate(ctx, p.Params(chatMaxTokens, chatTemp, 0))

	h.Memory.Append(ctx, core.Turn{
		SessionID:    in.SessionID,
		Question:     in.Question,
		Reply:        gen.Text,
		InputTokens:  gen.InputTokens,
		OutputTokens: gen.OutputTokens,
	})

	return chatResponse(in.SessionID, gen.Text), nil
}

func chatResponse(sessionID, reply string) core.Response {
	return core.Response{
		Domain: string(core.DomainChat),
		Answer: core.ChatAnswer{SessionID: sessionID, Reply: reply},
	}
}

// subjectData is the calculated context block plus the retrieval keywords.
type subjectData struct {
	lines    []string
	keywords []string
}

func (s subjectData) String() string {
	return strings.Join(s.lines, "\n")
}

// collectSubject derives facts for the asked date, the cards and both people.
// Profile keywords only feed retrieval when the question names no date or cards.
func (h *Chat) collectSubject(ctx context.Context, intent facts.ChatIntent, in *chatRequest) subjectData {
	var out subjectData
	profileKeywords := intent.ExplicitDate == nil && !intent.HasTarot()

	if d := intent.ExplicitDate; d != nil {
		derived := facts.Derive(d.Day, d.Month, d.Year)
		sign := derived.Sign.KnowledgeName()
		out.lines = append(out.lines, fmt.Sprintf("- [THÔNG TIN ĐƯỢC HỎI - NGÀY %s]: Số chủ đạo %s, Cung %s.", d.Display(), derived.LifePath, sign))
		out.keywords = append(out.keywords, "Số chủ đạo "+derived.LifePath, "Cung "+sign)
	}

	if intent.HasTarot() {
		out.lines = append(out.lines, fmt.Sprintf("- [BÀI TAROT]: %s.", strings.Join(intent.TarotCards, ", ")))
		out.keywords = append(out.keywords, intent.TarotCards...)
	}

	if user, err := facts.ParseSubject(in.User); err == nil {
		derived := facts.Derive(user.Date.Day, user.Date.Month, user.Date.Year)
		sign := derived.Sign.KnowledgeName()

		name := user.Name
		if name == "" {
			name = "Bạn"
		}
		menh, stars, ok := h.menhPalace(ctx, user)
		menhText := ""
		if ok {
			menhText = ", Mệnh " + menh
		}
		out.lines = append(out.lines, fmt.Sprintf("- [USER DATA - %s]: Sinh ngày %s. Số chủ đạo %s, Cung %s%s.", name, user.RawDate, derived.LifePath, sign, menhText))

		if profileKeywords {
			out.keywords = append(out.keywords, "Số chủ đạo "+derived.LifePath, "Cung "+sign)
			if ok {
				out.keywords = append(out.keywords, "Sao "+stars)
			}
		}
	}

	if partner, err := facts.ParseSubject(in.Partner); err == nil {
		derived := facts.Derive(partner.Date.Day, partner.Date.Month, partner.Date.Year)
		sign := derived.Sign.KnowledgeName()
		out.lines = append(out.lines, fmt.Sprintf("- [PARTNER DATA - Người ấy]: Số chủ đạo %s, Cung %s.", derived.LifePath, sign))

		if profileKeywords {
			out.keywords = append(out.keywords, "Số chủ đạo "+derived.LifePath, "Cung "+sign)
		}
	}

	return out
}

// menhPalace returns the Mệnh palace name and its main stars when a birth time is known.
func (h *Chat) menhPalace(ctx context.Context, user core.BirthSubject) (string, string, bool) {
	if user.Time == "" {
		return "", "", false
	}
	chart, err := h.chart(ctx, core.ChartRequest{
		Day:        user.Date.Day,
		Month:      user.Date.Month,
		Year:       user.Date.Year,
		HourBranch: facts.HourBranch(user.Time),
		GenderSign: facts.GenderSign(user.Gender),
		Name:       user.Name,
		TZOffset:   h.tzOffsetHours(),
	})
	if err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("chat proceeds without horoscope palace")
		return "", "", false
	}

	p, ok := chart.Palace(chart.MenhPalace)
	if !ok {
		return "", "", false
	}
	stars := strings.Join(p.PrimaryStars(), ", ")
	if stars == "" {
		stars = noMainStar
	}
	return p.Name, stars, true
}
