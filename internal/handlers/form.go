package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ai-prompt-studio/internal/promptgen"
	"ai-prompt-studio/internal/session"
)

const callbackPrefix = "pg"

const (
	menuMain  = "main"
	menuStyle = "style"
	menuRatio = "ratio"
	menuMode  = "mode"
)

type callbackData struct {
	OwnerID int64
	Action  string
	Arg     string
}

// parseCallback splits "pg:<owner>:<action>[:<arg>]". The arg keeps any
// further colons so ratios like 16:9 survive.
func parseCallback(data string) (callbackData, bool) {
	parts := strings.SplitN(strings.TrimSpace(data), ":", 4)
	if len(parts) < 3 || parts[0] != callbackPrefix {
		return callbackData{}, false
	}

	ownerID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return callbackData{}, false
	}

	cd := callbackData{OwnerID: ownerID, Action: parts[2]}
	if len(parts) == 4 {
		cd.Arg = parts[3]
	}
	return cd, true
}

func cb(ownerID int64, parts ...string) string {
	return fmt.Sprintf("%s:%d:%s", callbackPrefix, ownerID, strings.Join(parts, ":"))
}

func (h *Handler) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	if q == nil || q.Message == nil || q.Message.Chat == nil || q.From == nil {
		return nil
	}

	cd, ok := parseCallback(q.Data)
	if !ok {
		return nil
	}
	if cd.OwnerID != q.From.ID {
		_ = h.tg.AnswerCallback(q.ID, "这个菜单不是给你的。", true)
		return nil
	}

	chatID := q.Message.Chat.ID
	menu := menuMain

	switch cd.Action {
	case "menu":
		switch cd.Arg {
		case menuStyle, menuRatio, menuMode:
			menu = cd.Arg
		}
	case "style":
		h.sessions.Update(chatID, func(f *session.Form) { f.Style = promptgen.ParseStyle(cd.Arg) })
	case "ratio":
		ratio := promptgen.AspectRatio(cd.Arg)
		if ratio.Valid() {
			h.sessions.Update(chatID, func(f *session.Form) { f.AspectRatio = ratio })
		}
	case "mode":
		h.sessions.Update(chatID, func(f *session.Form) { f.Mode = promptgen.ParseMode(cd.Arg) })
	case "reset":
		h.sessions.Reset(chatID)
	case "random":
		_ = h.tg.AnswerCallback(q.ID, "🎲 随机灵感", false)
		return h.generate(ctx, chatID, h.pickIdea())
	default:
		_ = h.tg.AnswerCallback(q.ID, "", false)
		return nil
	}

	_ = h.tg.AnswerCallback(q.ID, "OK", false)

	form := h.sessions.Get(chatID)
	text := formText(form)
	kb := formKeyboard(cd.OwnerID, menu, form)
	if err := h.tg.EditTextWithKeyboard(chatID, q.Message.MessageID, text, kb); err == nil {
		return nil
	}
	_, err := h.tg.SendTextWithKeyboard(chatID, text, kb)
	return err
}

func formText(f session.Form) string {
	var b strings.Builder
	b.WriteString("🎛 当前设置\n\n")
	b.WriteString("画风: " + promptgen.StyleLabel(f.Style) + "\n")
	b.WriteString("比例: " + promptgen.AspectRatioLabel(f.AspectRatio) + "\n")
	b.WriteString("模式: " + promptgen.ModeLabel(f.Mode) + "\n")
	b.WriteString("\n直接发送你的想法即可生成咒语。")
	return b.String()
}

func formKeyboard(ownerID int64, menu string, f session.Form) tgbotapi.InlineKeyboardMarkup {
	switch menu {
	case menuStyle:
		return styleKeyboard(ownerID, f)
	case menuRatio:
		return ratioKeyboard(ownerID, f)
	case menuMode:
		return modeKeyboard(ownerID, f)
	default:
		return mainKeyboard(ownerID)
	}
}

func mainKeyboard(ownerID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🎨 画风", cb(ownerID, "menu", menuStyle)),
			tgbotapi.NewInlineKeyboardButtonData("📐 比例", cb(ownerID, "menu", menuRatio)),
			tgbotapi.NewInlineKeyboardButtonData("🖼 模式", cb(ownerID, "menu", menuMode)),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🎲 随机灵感", cb(ownerID, "random")),
			tgbotapi.NewInlineKeyboardButtonData("重置", cb(ownerID, "reset")),
		},
	)
}

func styleKeyboard(ownerID int64, f session.Form) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, opt := range promptgen.Styles() {
		label := opt.Icon + " " + opt.Label
		if opt.ID == f.Style {
			label = "✅ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, cb(ownerID, "style", string(opt.ID))))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, backRow(ownerID))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func ratioKeyboard(ownerID int64, f session.Form) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, opt := range promptgen.AspectRatios() {
		label := opt.Label
		if opt.ID == f.AspectRatio {
			label = "✅ " + label
		}
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, cb(ownerID, "ratio", string(opt.ID))),
		})
	}

	rows = append(rows, backRow(ownerID))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func modeKeyboard(ownerID int64, f session.Form) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, opt := range promptgen.Modes() {
		label := opt.Label
		if opt.ID == f.Mode {
			label = "✅ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, cb(ownerID, "mode", string(opt.ID))))
	}

	return tgbotapi.NewInlineKeyboardMarkup(row, backRow(ownerID))
}

func backRow(ownerID int64) []tgbotapi.InlineKeyboardButton {
	return []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅ 返回", cb(ownerID, "menu", menuMain)),
	}
}

func resultText(f session.Form, res promptgen.Result) string {
	p := res.Prompt

	var b strings.Builder
	b.WriteString("✨ 咒语已生成\n\n")
	b.WriteString("💡 想法: " + res.Idea + "\n")
	b.WriteString(fmt.Sprintf("%s | %s | %s\n\n", promptgen.StyleLabel(f.Style), promptgen.AspectRatioLabel(f.AspectRatio), promptgen.ModeLabel(f.Mode)))
	b.WriteString("English Prompt:\n" + p.EnglishPrompt + "\n\n")
	b.WriteString("中文释义:\n" + p.ChineseTranslation + "\n\n")
	b.WriteString("Negative Prompt:\n" + p.NegativePrompt + "\n\n")
	b.WriteString("💭 思路:\n" + p.Reasoning + "\n\n")
	b.WriteString("📐 建议比例: " + p.SuggestedAspectRatio)
	return b.String()
}
