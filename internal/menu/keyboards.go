package menu

import (
	"github.com/go-telegram/bot/models"

	"github.com/ttradingco/eventbot/internal/catalog"
)

// Reply-keyboard button labels. Text handlers match on these exact strings.
const (
	BtnLinks = "🔗 Enlaces y Conexión"
	BtnClose = "❌ Cerrar menú"
)

func row(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

func cb(text string, a Action) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: a.Encode()}
}

func urlBtn(text, url string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, URL: url}
}

// Main renders the root menu.
func Main() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		row(cb("📚 Material de apoyo", Action{Kind: KindMaterials})),
		row(cb("💳 Exness cuenta demo", Action{Kind: KindExness})),
		row(cb("📍 Ubicación", Action{Kind: KindLocation})),
		row(cb("📶 Conexión Wi-Fi", Action{Kind: KindWifi})),
		row(cb("🔗 Enlaces y Conexión", Action{Kind: KindLinks})),
		row(cb("📣 Enviar mensaje (Admin)", Action{Kind: KindAdminBroadcast})),
	}}
}

// Presenters renders a presenter picker whose buttons carry the given kind
// (materials flow or links flow).
func Presenters(kind Kind) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(catalog.Presenters)+1)
	for _, p := range catalog.Presenters {
		rows = append(rows, row(cb(p.Name, Action{Kind: kind, PresenterID: p.ID})))
	}
	rows = append(rows, row(cb("⬅️ Volver", Action{Kind: KindMainMenu})))
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// PresenterMaterials renders the Videos/Documents chooser for one presenter.
func PresenterMaterials(presenterID string) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		row(cb("🎥 Videos", Action{Kind: KindPresenterVideos, PresenterID: presenterID})),
		row(cb("📄 Documentos", Action{Kind: KindPresenterDocs, PresenterID: presenterID})),
		row(cb("⬅️ Elegir otro presentador", Action{Kind: KindMaterials})),
		row(cb("🏠 Menú principal", Action{Kind: KindMainMenu})),
	}}
}

// Documents lists a presenter's deliverable files.
func Documents(presenterID string, docs []catalog.Document) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(docs)+1)
	for _, d := range docs {
		rows = append(rows, row(cb(d.Title, Action{Kind: KindDocument, PresenterID: presenterID, Document: d.Title})))
	}
	rows = append(rows, row(cb("⬅️ Volver", Action{Kind: KindPresenterMaterials, PresenterID: presenterID})))
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// VideoLinks lists a presenter's hosted videos as URL buttons.
func VideoLinks(presenterID string, links []catalog.Link) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(links)+2)
	for _, l := range links {
		rows = append(rows, row(urlBtn(l.Title, l.URL)))
	}
	rows = append(rows, row(cb("⬅️ Volver", Action{Kind: KindPresenterMaterials, PresenterID: presenterID})))
	rows = append(rows, row(cb("🏠 Menú principal", Action{Kind: KindMainMenu})))
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// Links renders the general links menu.
func Links() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		row(cb("⭐ Enlaces por presentador", Action{Kind: KindLinksByPresenter})),
		row(cb("⬅️ Volver", Action{Kind: KindMainMenu})),
	}}
}

// PresenterLinks lists one presenter's reference links.
func PresenterLinks(presenterID string, links []catalog.Link) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(links)+2)
	for _, l := range links {
		rows = append(rows, row(urlBtn(l.Title, l.URL)))
	}
	rows = append(rows, row(cb("⬅️ Elegir otro presentador", Action{Kind: KindLinksByPresenter})))
	rows = append(rows, row(cb("🏠 Menú principal", Action{Kind: KindMainMenu})))
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// Location renders the map button.
func Location() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		row(urlBtn("📍 Abrir en Google Maps", catalog.LocationURL)),
		row(cb("⬅️ Volver", Action{Kind: KindMainMenu})),
	}}
}

// Exness renders the demo-account button.
func Exness() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		row(urlBtn("✅ Crear cuenta en Exness", catalog.ExnessAccountURL)),
		row(cb("⬅️ Volver", Action{Kind: KindMainMenu})),
	}}
}

// Wifi renders the back-only keyboard under the Wi-Fi notice.
func Wifi() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		row(cb("⬅️ Volver", Action{Kind: KindMainMenu})),
	}}
}

// Bottom renders the persistent reply keyboard shown after /start.
func Bottom() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: BtnLinks}},
			{{Text: BtnClose}},
		},
		ResizeKeyboard: true,
		IsPersistent:   true,
	}
}

// RemoveBottom hides the reply keyboard.
func RemoveBottom() *models.ReplyKeyboardRemove {
	return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
}
