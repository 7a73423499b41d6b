package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ai-prompt-studio/internal/promptgen"
	"ai-prompt-studio/internal/session"
	"ai-prompt-studio/internal/telegram"
)

const (
	helpText = "✨ AI 绘画咒语生成器\n\n" +
		"直接发送你的画面想法，我会把它变成专业的 AI 绘画提示词。\n\n" +
		"命令:\n" +
		"/style - 选择画风\n" +
		"/ratio - 选择画面比例\n" +
		"/mode - 文生图 / 参考图模式\n" +
		"/settings - 查看当前设置\n" +
		"/random - 随机灵感并生成\n" +
		"/reset - 恢复默认设置\n" +
		"/help - 帮助"

	busyText    = "⏳ 正在施法中，请等这一条完成后再发送。"
	unknownText = "❌ 未知命令，发送 /help 查看用法。"
)

// Messenger is the part of the Telegram client the handler talks to.
type Messenger interface {
	SendTyping(chatID int64)
	SendText(chatID int64, text string) error
	SendTextWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) (int, error)
	EditTextWithKeyboard(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) error
	AnswerCallback(callbackID string, text string, alert bool) error
}

type Generator interface {
	Generate(ctx context.Context, req promptgen.Request) (promptgen.Result, error)
}

var _ Messenger = (*telegram.Client)(nil)

type Options struct {
	Messenger  Messenger
	Generator  Generator
	Sessions   *session.Store
	Logger     *slog.Logger
	IdeaPicker func() string
}

type Handler struct {
	tg       Messenger
	gen      Generator
	sessions *session.Store
	logger   *slog.Logger
	pickIdea func() string
}

func New(opts Options) (*Handler, error) {
	if opts.Messenger == nil {
		return nil, errors.New("messenger is required")
	}
	if opts.Generator == nil {
		return nil, errors.New("generator is required")
	}

	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.NewStore(session.Options{})
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	pick := opts.IdeaPicker
	if pick == nil {
		pick = promptgen.RandomIdea
	}

	return &Handler{
		tg:       opts.Messenger,
		gen:      opts.Generator,
		sessions: sessions,
		logger:   logger,
		pickIdea: pick,
	}, nil
}

func (h *Handler) HandleUpdate(ctx context.Context, update telegram.Update) error {
	if update.CallbackQuery != nil {
		return h.handleCallback(ctx, update.CallbackQuery)
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return nil
	}

	if msg.IsCommand() {
		return h.handleCommand(ctx, msg)
	}

	idea := strings.TrimSpace(msg.Text)
	if idea == "" {
		return nil
	}
	return h.generate(ctx, msg.Chat.ID, idea)
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	var ownerID int64
	if msg.From != nil {
		ownerID = msg.From.ID
	}

	switch msg.Command() {
	case "start", "help":
		return h.tg.SendText(chatID, helpText)
	case "settings":
		return h.sendForm(chatID, ownerID, menuMain)
	case "style":
		return h.sendForm(chatID, ownerID, menuStyle)
	case "ratio":
		return h.sendForm(chatID, ownerID, menuRatio)
	case "mode":
		return h.sendForm(chatID, ownerID, menuMode)
	case "reset":
		h.sessions.Reset(chatID)
		return h.sendForm(chatID, ownerID, menuMain)
	case "random":
		return h.generate(ctx, chatID, h.pickIdea())
	default:
		return h.tg.SendText(chatID, unknownText)
	}
}

func (h *Handler) sendForm(chatID, ownerID int64, menu string) error {
	form := h.sessions.Get(chatID)
	_, err := h.tg.SendTextWithKeyboard(chatID, formText(form), formKeyboard(ownerID, menu, form))
	return err
}

// generate runs one generation for the chat. A chat already waiting on a
// result gets the busy reply instead of a second call.
func (h *Handler) generate(ctx context.Context, chatID int64, idea string) error {
	form, ok := h.sessions.TryBegin(chatID)
	if !ok {
		return h.tg.SendText(chatID, busyText)
	}
	defer h.sessions.Release(chatID)

	h.tg.SendTyping(chatID)

	res, err := h.gen.Generate(ctx, form.Request(idea))
	if err != nil {
		h.logger.Error("prompt generation failed", "chat_id", chatID, "err", err)
		return h.tg.SendText(chatID, "❌ "+promptgen.FailureMessage)
	}

	return h.tg.SendText(chatID, resultText(form, res))
}
