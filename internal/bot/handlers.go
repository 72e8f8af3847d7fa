package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/ttradingco/eventbot/internal/auth"
	"github.com/ttradingco/eventbot/internal/broadcast"
	"github.com/ttradingco/eventbot/internal/bot/config"
	"github.com/ttradingco/eventbot/internal/catalog"
	"github.com/ttradingco/eventbot/internal/common"
	"github.com/ttradingco/eventbot/internal/delivery"
	"github.com/ttradingco/eventbot/internal/logging"
	"github.com/ttradingco/eventbot/internal/menu"
	"github.com/ttradingco/eventbot/internal/prelaunch"
	"github.com/ttradingco/eventbot/internal/storage"
	"github.com/ttradingco/eventbot/internal/telegram"
)

const (
	msgValidateFirst = "⚠️ Debes validarte primero. Escribe tu cédula o correo."
	msgAskCredential = "❗ Por favor escribe tu cédula o correo."
	msgNotInRoster   = "🚫 No encuentro tu registro en la base.\n\n" +
		"Verifica que hayas escrito tu cédula o correo tal como lo registraste."
	msgMainMenu       = "Menú principal:"
	msgBroadcastArmed = "📣 Envío masivo\n\nEnvía ahora el mensaje que deseas reenviar a TODOS " +
		"los usuarios validados (texto, foto, video o documento).\n\n" +
		"Escribe /cancel para cancelar."
	msgAdminsOnly = "🚫 Este comando es solo para administradores."
)

// SeenRecorder receives the "last seen" touch issued on every inbound
// update; satisfied by storage.Users.
type SeenRecorder interface {
	UpsertSeen(ctx context.Context, u storage.SeenUser) error
}

// Handlers routes inbound updates. Every entry point re-checks the prelaunch
// gate and the authentication state; navigation payloads are never trusted
// across those two gates.
type Handlers struct {
	cfg       *config.Config
	log       logging.Logger
	client    telegram.Client
	gate      *prelaunch.Gate
	auth      *auth.Service
	users     SeenRecorder
	catalog   *catalog.Catalog
	sender    *delivery.Sender
	broadcast *broadcast.Controller
	now       func() time.Time
}

func NewHandlers(
	cfg *config.Config,
	log logging.Logger,
	client telegram.Client,
	gate *prelaunch.Gate,
	authSvc *auth.Service,
	users SeenRecorder,
	cat *catalog.Catalog,
	sender *delivery.Sender,
	bcast *broadcast.Controller,
) *Handlers {
	return &Handlers{
		cfg:       cfg,
		log:       log,
		client:    client,
		gate:      gate,
		auth:      authSvc,
		users:     users,
		catalog:   cat,
		sender:    sender,
		broadcast: bcast,
		now:       time.Now,
	}
}

// touchSeen records the inbound user's profile; a failure is logged and
// swallowed because a datastore blip must not block the interaction.
func (h *Handlers) touchSeen(ctx context.Context, u *models.User) {
	if u == nil {
		return
	}
	err := h.users.UpsertSeen(ctx, storage.SeenUser{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Language:  u.LanguageCode,
	})
	if err != nil {
		h.log.Warn(ctx, "seen upsert failed", "user_id", u.ID, "error", err)
	}
}

func (h *Handlers) prelaunchNotice() (bool, string) {
	closed, days := h.gate.Status(h.now())
	if !closed {
		return false, ""
	}
	return true, fmt.Sprintf(
		"✨ El bot estará disponible 🔥 el día del evento.\n\n⏳ Faltan %d días, vuelve pronto. 🙌\n\n%s",
		days, h.cfg.PrelaunchMessage)
}

func (h *Handlers) send(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) {
	if _, err := h.client.SendMessage(ctx, chatID, text, markup); err != nil {
		h.log.Error(ctx, "send failed", "chat_id", chatID, "error", err)
	}
}

func (h *Handlers) edit(ctx context.Context, chatID int64, messageID int, text string, markup models.ReplyMarkup) {
	if err := h.client.EditMessage(ctx, chatID, messageID, text, markup); err != nil {
		h.log.Warn(ctx, "edit failed", "chat_id", chatID, "error", err)
	}
}

// OnStart handles /start: seen-touch, prelaunch gate, credential prompt.
func (h *Handlers) OnStart(ctx context.Context, msg *models.Message) {
	h.touchSeen(ctx, msg.From)
	chatID := msg.Chat.ID

	if closed, notice := h.prelaunchNotice(); closed {
		h.send(ctx, chatID, notice, nil)
		return
	}
	h.send(ctx, chatID, fmt.Sprintf(
		"👋 Hola, este es el bot del %s.\n\nPor favor escribe tu cédula o correo registrado para validar tu acceso:",
		h.cfg.EventName), menu.Bottom())
}

// OnHelp lists the recognized commands.
func (h *Handlers) OnHelp(ctx context.Context, msg *models.Message) {
	h.touchSeen(ctx, msg.From)
	h.send(ctx, msg.Chat.ID,
		"/start - Iniciar/validar acceso\n"+
			"/menu - Mostrar menú\n"+
			"/help - Ayuda\n"+
			"/broadcast - (admins) iniciar envío masivo\n"+
			"/cancel - cancelar envío masivo\n"+
			"/miid - ver tu ID de Telegram\n", nil)
}

// OnMyID reports the caller's Telegram identity, useful when registering a
// new admin.
func (h *Handlers) OnMyID(ctx context.Context, msg *models.Message) {
	h.touchSeen(ctx, msg.From)
	username := "(sin username)"
	var uid int64
	if msg.From != nil {
		uid = msg.From.ID
		if msg.From.Username != "" {
			username = "@" + msg.From.Username
		}
	}
	h.send(ctx, msg.Chat.ID, fmt.Sprintf(
		"🆔 Tu información de Telegram\n• ID: %d\n• Username: %s\n\n"+
			"Si eres admin, asegúrate de que tu ID esté en la lista de administradores.",
		uid, username), nil)
}

// OnMenu handles /menu: authentication required.
func (h *Handlers) OnMenu(ctx context.Context, msg *models.Message) {
	h.touchSeen(ctx, msg.From)
	chatID := msg.Chat.ID

	if msg.From == nil || !h.auth.IsAuthenticated(ctx, msg.From.ID) {
		h.send(ctx, chatID, msgValidateFirst, nil)
		return
	}
	h.send(ctx, chatID, msgMainMenu, menu.Main())
}

// OnBroadcastCommand arms broadcast mode for an admin.
func (h *Handlers) OnBroadcastCommand(ctx context.Context, msg *models.Message) {
	h.touchSeen(ctx, msg.From)
	chatID := msg.Chat.ID
	if msg.From == nil {
		return
	}
	if err := h.broadcast.Arm(msg.From.ID); err != nil {
		h.send(ctx, chatID, msgAdminsOnly, nil)
		return
	}
	h.send(ctx, chatID, msgBroadcastArmed, nil)
}

// OnCancel disarms broadcast mode unconditionally.
func (h *Handlers) OnCancel(ctx context.Context, msg *models.Message) {
	if msg.From != nil {
		h.broadcast.Cancel(msg.From.ID)
	}
	h.send(ctx, msg.Chat.ID, "Operación cancelada.", nil)
	h.send(ctx, msg.Chat.ID, msgMainMenu, menu.Main())
}

// OnMessage handles every non-command message. Broadcast consumption runs
// first: an armed admin's next authored message is relayed, whatever its
// type, before any other interpretation.
func (h *Handlers) OnMessage(ctx context.Context, msg *models.Message) {
	h.touchSeen(ctx, msg.From)
	chatID := msg.Chat.ID

	if msg.From != nil && h.broadcast.Armed(msg.From.ID) {
		h.runBroadcast(ctx, msg)
		return
	}

	// Non-text messages have no meaning outside broadcast mode.
	if msg.Text == "" {
		return
	}
	text := strings.TrimSpace(msg.Text)

	if closed, notice := h.prelaunchNotice(); closed {
		h.send(ctx, chatID, notice, nil)
		return
	}

	if msg.From != nil && h.auth.IsAuthenticated(ctx, msg.From.ID) {
		switch text {
		case menu.BtnLinks:
			h.send(ctx, chatID, "🔗 Enlaces y Conexión", menu.Links())
		case menu.BtnClose:
			h.send(ctx, chatID, "Menú ocultado. Usa /menu para volver a mostrarlo.", menu.RemoveBottom())
		default:
			h.send(ctx, chatID, "Estás autenticado. Usa el menú:", menu.Main())
		}
		return
	}

	if text == "" {
		h.send(ctx, chatID, msgAskCredential, nil)
		return
	}
	if msg.From == nil {
		return
	}

	entry, err := h.auth.Validate(ctx, msg.From.ID, text)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			h.send(ctx, chatID, msgNotInRoster, nil)
			return
		}
		h.log.Error(ctx, "validation failed", "user_id", msg.From.ID, "error", err)
		h.send(ctx, chatID, "⚠️ Ocurrió un error validando tu acceso. Intenta de nuevo.", nil)
		return
	}

	firstName := entry.Name
	if i := strings.IndexByte(firstName, ' '); i > 0 {
		firstName = firstName[:i]
	}
	h.send(ctx, chatID, fmt.Sprintf(
		"¡Hola, %s! 😊\n🎉 ¡Bienvenido/a al %s! 🎉\n\nHas sido validado correctamente.\nUsa el menú para navegar.",
		firstName, h.cfg.EventName), menu.Bottom())
	h.send(ctx, chatID, msgMainMenu, menu.Main())
}

func (h *Handlers) runBroadcast(ctx context.Context, msg *models.Message) {
	chatID := msg.Chat.ID

	report, err := h.broadcast.Run(ctx, msg.From.ID, chatID, msg.ID)
	if err != nil {
		h.log.Error(ctx, "broadcast run failed", "admin_id", msg.From.ID, "error", err)
		h.send(ctx, chatID, "⚠️ No se pudo completar el envío masivo.", nil)
		h.send(ctx, chatID, msgMainMenu, menu.Main())
		return
	}
	if report.Sent == 0 && report.Failed == 0 {
		h.send(ctx, chatID, "⚠️ Aún no hay usuarios validados en la base de datos.", nil)
		h.send(ctx, chatID, msgMainMenu, menu.Main())
		return
	}
	h.send(ctx, chatID, fmt.Sprintf("✅ Enviado a %d usuarios. ❌ Fallidos: %d", report.Sent, report.Failed), nil)
	h.send(ctx, chatID, msgMainMenu, menu.Main())
}

// OnCallback handles button presses. The prelaunch gate and authentication
// are re-checked before any transition; stale keyboards never bypass them.
func (h *Handlers) OnCallback(ctx context.Context, cq *models.CallbackQuery) {
	if err := h.client.AnswerCallback(ctx, cq.ID, "", false); err != nil {
		h.log.Warn(ctx, "callback answer failed", "error", err)
	}
	h.touchSeen(ctx, &cq.From)

	cbMsg := cq.Message.Message
	if cbMsg == nil {
		// The originating message is inaccessible; nothing to edit or reply to.
		return
	}
	chatID := cbMsg.Chat.ID
	messageID := cbMsg.ID

	action, err := menu.Decode(cq.Data)
	if err != nil {
		h.log.Warn(ctx, "unknown callback payload", "data", cq.Data)
		h.send(ctx, chatID, "Opción no reconocida. Usa /menu para volver al menú.", nil)
		return
	}

	if action.Kind == menu.KindAdminBroadcast {
		h.armBroadcastFromButton(ctx, cq, chatID, messageID)
		return
	}

	if closed, notice := h.prelaunchNotice(); closed {
		h.send(ctx, chatID, notice, nil)
		return
	}
	if !h.auth.IsAuthenticated(ctx, cq.From.ID) {
		h.edit(ctx, chatID, messageID, msgValidateFirst, nil)
		return
	}

	switch action.Kind {
	case menu.KindMainMenu:
		h.edit(ctx, chatID, messageID, msgMainMenu, menu.Main())

	case menu.KindMaterials:
		h.edit(ctx, chatID, messageID, "📚 Material de apoyo\nElige un presentador:",
			menu.Presenters(menu.KindPresenterMaterials))

	case menu.KindPresenterMaterials:
		h.edit(ctx, chatID, messageID,
			fmt.Sprintf("📚 Material de %s", catalog.PresenterName(action.PresenterID)),
			menu.PresenterMaterials(action.PresenterID))

	case menu.KindPresenterVideos:
		links := h.catalog.VideoLinks(action.PresenterID)
		if len(links) == 0 {
			h.edit(ctx, chatID, messageID, "🎥 No hay videos por ahora.", menu.PresenterMaterials(action.PresenterID))
			return
		}
		h.edit(ctx, chatID, messageID, "🎥 Videos:", menu.VideoLinks(action.PresenterID, links))

	case menu.KindPresenterDocs:
		docs := h.catalog.Documents(action.PresenterID)
		if len(docs) == 0 {
			h.edit(ctx, chatID, messageID, "📄 No hay documentos disponibles por ahora.", menu.PresenterMaterials(action.PresenterID))
			return
		}
		h.edit(ctx, chatID, messageID, "📄 Documentos:", menu.Documents(action.PresenterID, docs))

	case menu.KindDocument:
		doc, ok := h.catalog.Document(action.PresenterID, action.Document)
		if !ok {
			h.send(ctx, chatID, "No se encontró el documento solicitado.", nil)
			return
		}
		if err := h.sender.Send(ctx, chatID, doc.Path, doc.Title); err != nil {
			h.log.Error(ctx, "document delivery failed", "document", doc.Title, "error", err)
		}

	case menu.KindLinks:
		h.edit(ctx, chatID, messageID, "🔗 Enlaces y Conexión", menu.Links())

	case menu.KindLinksByPresenter:
		h.edit(ctx, chatID, messageID, "⭐ Elige un presentador:", menu.Presenters(menu.KindPresenterLinks))

	case menu.KindPresenterLinks:
		name := catalog.PresenterName(action.PresenterID)
		links := h.catalog.PresenterLinks(action.PresenterID)
		text := fmt.Sprintf("⭐ Enlaces de %s:", name)
		if len(links) == 0 {
			text = fmt.Sprintf("⭐ Enlaces de %s\n(No hay enlaces por ahora.)", name)
		}
		h.edit(ctx, chatID, messageID, text, menu.PresenterLinks(action.PresenterID, links))

	case menu.KindLocation:
		h.edit(ctx, chatID, messageID, "📍 Ubicación del evento\nToca el botón para abrir en Google Maps.", menu.Location())

	case menu.KindWifi:
		h.edit(ctx, chatID, messageID, h.cfg.WifiMessage, menu.Wifi())

	case menu.KindExness:
		h.edit(ctx, chatID, messageID,
			"💳 Apertura de cuenta demo\n\n"+
				"1) Primero crea y verifica tu cuenta en Exness.\n"+
				"2) Empieza a disfrutar de Exness.\n\n"+
				"Usa los botones de abajo 👇", menu.Exness())
	}
}

func (h *Handlers) armBroadcastFromButton(ctx context.Context, cq *models.CallbackQuery, chatID int64, messageID int) {
	if err := h.broadcast.Arm(cq.From.ID); err != nil {
		if answerErr := h.client.AnswerCallback(ctx, cq.ID, "Solo para administradores.", true); answerErr != nil {
			h.log.Warn(ctx, "callback answer failed", "error", answerErr)
		}
		return
	}
	h.edit(ctx, chatID, messageID, msgBroadcastArmed, nil)
}
