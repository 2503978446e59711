package bot

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"cafe-site/config"
	"cafe-site/models"
	"cafe-site/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackPrefix   = "admin:"
	maxImportSize    = 5 << 20
	downloadDeadline = 30 * time.Second
)

// Flow steps.
const (
	stepMenuName          = "menu_name"
	stepMenuPrice         = "menu_price"
	stepTestimonialName   = "testimonial_name"
	stepTestimonialText   = "testimonial_text"
	stepTestimonialRating = "testimonial_rating"
	stepGalleryURL        = "gallery_url"
	stepGalleryAlt        = "gallery_alt"
	stepImport            = "import"
	stepInfoField         = "info_field"
	stepMenuField         = "menu_field"
)

const confirmSuffix = ":confirm"

// Editable fields offered by the panel, in button order.
var (
	infoFields = []string{"name", "slogan", "phone", "whatsapp", "address", "hours", "email", "instagram", "facebook"}
	menuFields = []string{"name", "description", "price", "image", "badge"}
)

type adminState struct {
	Step     string
	Category string
	Name     string
	Text     string
}

// AdminBot is the Telegram panel for editing the café document. Access is
// granted by sending the LOGIN password, optionally only from ADMIN_ID.
type AdminBot struct {
	api     *tgbotapi.BotAPI
	content *services.ContentService
	login   string
	adminID int64
	client  *http.Client

	state    map[int64]*adminState
	loggedIn map[int64]bool
	stateMu  sync.RWMutex
}

func NewAdminBot(cfg *config.Config, content *services.ContentService) (*AdminBot, error) {
	if cfg.Telegram.AdminToken == "" {
		return nil, fmt.Errorf("ADMIN_BOT_TOKEN not set")
	}
	if strings.TrimSpace(cfg.Telegram.Login) == "" {
		return nil, fmt.Errorf("LOGIN not set")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.AdminToken)
	if err != nil {
		return nil, err
	}
	return &AdminBot{
		api:      api,
		content:  content,
		login:    strings.TrimSpace(cfg.Telegram.Login),
		adminID:  cfg.Telegram.AdminID,
		client:   &http.Client{Timeout: downloadDeadline},
		state:    make(map[int64]*adminState),
		loggedIn: make(map[int64]bool),
	}, nil
}

// Start polls for updates until ctx is cancelled.
func (a *AdminBot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := a.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			a.handleUpdate(ctx, update)
		}
	}
}

func (a *AdminBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		a.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	userID := msg.From.ID
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch text {
	case "/cancel":
		a.clearState(userID)
		a.send(chatID, "❌ Cancelado.")
		if a.isLoggedIn(userID) {
			a.sendPanel(chatID)
		}
		return
	case "/start":
		if a.isLoggedIn(userID) {
			a.sendPanel(chatID)
		} else {
			a.send(chatID, "🔒 Panel de administración. Envía tu contraseña para continuar.")
		}
		return
	}

	if !a.isLoggedIn(userID) {
		if a.checkLogin(userID, text) {
			a.setLoggedIn(userID, true)
			a.sendPanel(chatID)
		} else {
			a.send(chatID, "🔒 Envía la contraseña de administrador para acceder al panel.")
		}
		return
	}

	if msg.Document != nil {
		a.handleImport(ctx, chatID, userID, msg.Document)
		return
	}
	if a.handleFlow(ctx, chatID, userID, text) {
		return
	}
	a.sendPanel(chatID)
}

func (a *AdminBot) checkLogin(userID int64, text string) bool {
	if a.adminID != 0 && userID != a.adminID {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(text), []byte(a.login)) == 1
}

func (a *AdminBot) isLoggedIn(userID int64) bool {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	return a.loggedIn[userID]
}

func (a *AdminBot) setLoggedIn(userID int64, v bool) {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	if v {
		a.loggedIn[userID] = true
	} else {
		delete(a.loggedIn, userID)
		delete(a.state, userID)
	}
}

func (a *AdminBot) getState(userID int64) *adminState {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	return a.state[userID]
}

func (a *AdminBot) setState(userID int64, st *adminState) {
	a.stateMu.Lock()
	a.state[userID] = st
	a.stateMu.Unlock()
}

func (a *AdminBot) clearState(userID int64) {
	a.stateMu.Lock()
	delete(a.state, userID)
	a.stateMu.Unlock()
}

func (a *AdminBot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := a.api.Send(msg); err != nil {
		log.Printf("admin bot send error: %v", err)
	}
}

func (a *AdminBot) sendWithInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := a.api.Send(msg); err != nil {
		log.Printf("admin bot send error: %v", err)
	}
}

func button(text, action string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, callbackPrefix+action)
}

func panelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button("☕ Agregar bebida", "add:"+models.CategoryDrink),
			button("🍰 Agregar postre", "add:"+models.CategoryDessert),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("📋 Bebidas", "list:"+models.CategoryDrink),
			button("📋 Postres", "list:"+models.CategoryDessert),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("💬 Testimonios", "testimonials"),
			button("🖼 Galería", "gallery"),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("ℹ️ Información", "info"),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("⬇️ Exportar", "export"),
			button("⬆️ Importar", "import"),
			button("♻️ Restaurar", "reset"),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("🚪 Salir", "logout"),
		),
	)
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(button("« Volver al panel", "back"))
}

func (a *AdminBot) sendPanel(chatID int64) {
	a.sendWithInline(chatID, "📋 Panel de administración\n\nElige una acción:", panelKeyboard())
}

// parseCallback splits "admin:del:123" into ("del", "123").
func parseCallback(data string) (action, arg string, ok bool) {
	if !strings.HasPrefix(data, callbackPrefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(data, callbackPrefix)
	action, arg, _ = strings.Cut(rest, ":")
	return action, arg, action != ""
}

func validCategory(c string) bool {
	return c == models.CategoryDrink || c == models.CategoryDessert
}

func (a *AdminBot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	userID := cq.From.ID

	if _, err := a.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		log.Printf("admin bot callback ack: %v", err)
	}
	if !a.isLoggedIn(userID) {
		a.send(chatID, "🔒 Sesión cerrada. Envía tu contraseña.")
		return
	}
	action, arg, ok := parseCallback(cq.Data)
	if !ok {
		return
	}

	switch action {
	case "back":
		a.clearState(userID)
		a.sendPanel(chatID)
	case "logout":
		a.setLoggedIn(userID, false)
		a.send(chatID, "👋 Sesión cerrada.")
	case "list":
		if validCategory(arg) {
			a.sendMenuList(ctx, chatID, arg)
		}
	case "add":
		if !validCategory(arg) {
			return
		}
		a.setState(userID, &adminState{Step: stepMenuName, Category: arg})
		a.send(chatID, fmt.Sprintf("Envía el nombre del nuevo producto (%s). Cancelar: /cancel", models.CategoryLabel(arg)))
	case "del":
		a.confirmOrDelete(ctx, chatID, action, arg, "este producto", "✅ Producto eliminado.", a.content.DeleteMenuItem)
	case "edit":
		a.sendMenuEditChoices(ctx, chatID, arg)
	case "editf":
		a.startMenuFieldEdit(ctx, chatID, userID, arg)
	case "testimonials":
		a.sendTestimonials(ctx, chatID)
	case "addtest":
		a.setState(userID, &adminState{Step: stepTestimonialName})
		a.send(chatID, "Envía el nombre del cliente. Cancelar: /cancel")
	case "deltest":
		a.confirmOrDelete(ctx, chatID, action, arg, "este testimonio", "✅ Testimonio eliminado.", a.content.DeleteTestimonial)
	case "gallery":
		a.sendGallery(ctx, chatID)
	case "addimg":
		a.setState(userID, &adminState{Step: stepGalleryURL})
		a.send(chatID, "Envía la URL de la imagen. Cancelar: /cancel")
	case "delimg":
		a.confirmOrDelete(ctx, chatID, action, arg, "esta imagen", "✅ Imagen eliminada.", a.content.DeleteGalleryImage)
	case "info":
		data, err := a.content.Get(ctx)
		if err != nil {
			a.send(chatID, "❌ Error al cargar: "+err.Error())
			return
		}
		a.sendWithInline(chatID, formatInfo(data.Info), infoKeyboard())
	case "editinfo":
		if !contains(infoFields, arg) {
			return
		}
		a.setState(userID, &adminState{Step: stepInfoField, Text: arg})
		a.send(chatID, fmt.Sprintf("Envía el nuevo valor para «%s». Cancelar: /cancel", arg))
	case "export":
		a.sendExport(ctx, chatID)
	case "import":
		a.setState(userID, &adminState{Step: stepImport})
		a.send(chatID, "📎 Envía el archivo "+services.ExportFileName+" como documento. Cancelar: /cancel")
	case "reset":
		if arg == "confirm" {
			a.doReset(ctx, chatID)
			return
		}
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				button("✅ Sí, restaurar", "reset:confirm"),
				button("❌ No", "back"),
			),
		)
		a.sendWithInline(chatID, "⚠️ ¿Restaurar todos los datos a los valores por defecto? Esta acción no se puede deshacer.", kb)
	}
}

// splitConfirm turns "123:confirm" into ("123", true).
func splitConfirm(arg string) (id string, confirmed bool) {
	return strings.CutSuffix(arg, confirmSuffix)
}

func confirmKeyboard(action, id string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button("✅ Sí, eliminar", action+":"+id+confirmSuffix),
			button("❌ No", "back"),
		),
	)
}

// confirmOrDelete asks first and deletes only on the confirmed callback.
func (a *AdminBot) confirmOrDelete(ctx context.Context, chatID int64, action, arg, what, done string, del func(context.Context, string) error) {
	id, confirmed := splitConfirm(arg)
	if id == "" {
		return
	}
	if !confirmed {
		a.sendWithInline(chatID, fmt.Sprintf("⚠️ ¿Eliminar %s?", what), confirmKeyboard(action, id))
		return
	}
	if err := del(ctx, id); err != nil {
		a.send(chatID, "❌ No se pudo eliminar: "+err.Error())
		return
	}
	a.send(chatID, done)
	a.sendPanel(chatID)
}

func infoKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(infoFields); i += 3 {
		var row []tgbotapi.InlineKeyboardButton
		for _, f := range infoFields[i:min(i+3, len(infoFields))] {
			row = append(row, button("✏️ "+f, "editinfo:"+f))
		}
		rows = append(rows, row)
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (a *AdminBot) sendMenuEditChoices(ctx context.Context, chatID int64, id string) {
	item, err := a.content.MenuItem(ctx, id)
	if err != nil {
		a.send(chatID, "❌ "+err.Error())
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, f := range menuFields {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("✏️ "+f, "editf:"+item.ID+":"+f)))
	}
	featured := "⭐ Destacar"
	if item.Featured {
		featured = "☆ Quitar destacado"
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(featured, "editf:"+item.ID+":featured")), backRow())
	a.sendWithInline(chatID, fmt.Sprintf("Editar «%s». Elige el campo:", item.Name), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// startMenuFieldEdit handles "<id>:<field>". Featured toggles at once; the
// other fields wait for the new value.
func (a *AdminBot) startMenuFieldEdit(ctx context.Context, chatID, userID int64, arg string) {
	id, field, ok := strings.Cut(arg, ":")
	if !ok || id == "" {
		return
	}
	if field == "featured" {
		item, err := a.content.MenuItem(ctx, id)
		if err != nil {
			a.send(chatID, "❌ "+err.Error())
			return
		}
		item.Featured = !item.Featured
		if _, err := a.content.UpdateMenuItem(ctx, id, *item); err != nil {
			a.send(chatID, "❌ No se pudo guardar: "+err.Error())
			return
		}
		a.send(chatID, "✅ Guardado.")
		a.sendPanel(chatID)
		return
	}
	if !contains(menuFields, field) {
		return
	}
	a.setState(userID, &adminState{Step: stepMenuField, Name: id, Text: field})
	a.send(chatID, fmt.Sprintf("Envía el nuevo valor para «%s». Cancelar: /cancel", field))
}

// setInfoField writes value into the named field of info.
func setInfoField(info *models.Info, field, value string) error {
	switch field {
	case "name":
		info.Name = value
	case "slogan":
		info.Slogan = value
	case "phone":
		info.Phone = value
	case "whatsapp":
		info.WhatsApp = value
	case "address":
		info.Address = value
	case "hours":
		info.Hours = value
	case "email":
		info.Email = value
	case "instagram":
		info.Social.Instagram = value
	case "facebook":
		info.Social.Facebook = value
	default:
		return fmt.Errorf("unknown info field %q", field)
	}
	return nil
}

// setMenuField writes value into the named field of item; "-" clears the
// optional badge.
func setMenuField(item *models.MenuItem, field, value string) error {
	switch field {
	case "name":
		item.Name = value
	case "description":
		item.Description = value
	case "price":
		price, err := parsePrice(value)
		if err != nil {
			return err
		}
		item.Price = price
	case "image":
		item.Image = value
	case "badge":
		if value == "-" {
			value = ""
		}
		item.Badge = value
	default:
		return fmt.Errorf("unknown menu field %q", field)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (a *AdminBot) doReset(ctx context.Context, chatID int64) {
	if err := a.content.Reset(ctx); err != nil {
		a.send(chatID, "❌ No se pudo restaurar: "+err.Error())
		return
	}
	a.send(chatID, "✅ Datos restaurados a los valores por defecto.")
	a.sendPanel(chatID)
}

// handleFlow advances a multi-step add or edit flow. It reports whether the message
// belonged to one.
func (a *AdminBot) handleFlow(ctx context.Context, chatID, userID int64, text string) bool {
	st := a.getState(userID)
	if st == nil {
		return false
	}
	switch st.Step {
	case stepMenuName:
		if text == "" {
			a.send(chatID, "El nombre no puede estar vacío.")
			return true
		}
		st.Name = text
		st.Step = stepMenuPrice
		a.setState(userID, st)
		a.send(chatID, fmt.Sprintf("Envía el precio de «%s» (ej. 4.50):", text))
	case stepMenuPrice:
		price, err := parsePrice(text)
		if err != nil {
			a.send(chatID, "Precio inválido. Envía un número (ej. 4.50).")
			return true
		}
		a.clearState(userID)
		item, err := a.content.AddMenuItem(ctx, models.MenuItem{Name: st.Name, Price: price, Category: st.Category})
		if err != nil {
			a.send(chatID, "❌ No se pudo agregar: "+err.Error())
			return true
		}
		a.send(chatID, fmt.Sprintf("✅ Agregado: %s — $%.2f (id %s)", item.Name, item.Price, item.ID))
		a.sendPanel(chatID)
	case stepTestimonialName:
		st.Name = text
		st.Step = stepTestimonialText
		a.setState(userID, st)
		a.send(chatID, "Envía el texto del testimonio:")
	case stepTestimonialText:
		st.Text = text
		st.Step = stepTestimonialRating
		a.setState(userID, st)
		a.send(chatID, "Envía la calificación (1-5):")
	case stepTestimonialRating:
		rating, err := parseRating(text)
		if err != nil {
			a.send(chatID, "Calificación inválida. Envía un número del 1 al 5.")
			return true
		}
		a.clearState(userID)
		if _, err := a.content.AddTestimonial(ctx, models.Testimonial{Name: st.Name, Text: st.Text, Rating: rating}); err != nil {
			a.send(chatID, "❌ No se pudo agregar: "+err.Error())
			return true
		}
		a.send(chatID, "✅ Testimonio agregado.")
		a.sendPanel(chatID)
	case stepGalleryURL:
		st.Name = text
		st.Step = stepGalleryAlt
		a.setState(userID, st)
		a.send(chatID, "Envía la descripción (texto alternativo) de la imagen:")
	case stepGalleryAlt:
		a.clearState(userID)
		if _, err := a.content.AddGalleryImage(ctx, models.GalleryImage{URL: st.Name, Alt: text}); err != nil {
			a.send(chatID, "❌ No se pudo agregar: "+err.Error())
			return true
		}
		a.send(chatID, "✅ Imagen agregada.")
		a.sendPanel(chatID)
	case stepInfoField:
		a.clearState(userID)
		data, err := a.content.Get(ctx)
		if err != nil {
			a.send(chatID, "❌ Error al cargar: "+err.Error())
			return true
		}
		info := data.Info
		if err := setInfoField(&info, st.Text, text); err != nil {
			a.send(chatID, "❌ "+err.Error())
			return true
		}
		if _, err := a.content.UpdateInfo(ctx, info); err != nil {
			a.send(chatID, "❌ No se pudo guardar: "+err.Error())
			return true
		}
		a.send(chatID, "✅ Información actualizada.")
		a.sendPanel(chatID)
	case stepMenuField:
		item, err := a.content.MenuItem(ctx, st.Name)
		if err != nil {
			a.clearState(userID)
			a.send(chatID, "❌ "+err.Error())
			return true
		}
		if err := setMenuField(item, st.Text, text); err != nil {
			a.send(chatID, "Valor inválido. Inténtalo de nuevo o /cancel.")
			return true
		}
		a.clearState(userID)
		if _, err := a.content.UpdateMenuItem(ctx, st.Name, *item); err != nil {
			a.send(chatID, "❌ No se pudo guardar: "+err.Error())
			return true
		}
		a.send(chatID, "✅ Producto actualizado.")
		a.sendPanel(chatID)
	case stepImport:
		a.send(chatID, "📎 Envía el archivo JSON como documento, o /cancel.")
	default:
		return false
	}
	return true
}

func (a *AdminBot) sendMenuList(ctx context.Context, chatID int64, category string) {
	items, err := a.content.ListMenu(ctx, category)
	if err != nil {
		a.send(chatID, "❌ Error al cargar la lista: "+err.Error())
		return
	}
	if len(items) == 0 {
		a.sendWithInline(chatID, fmt.Sprintf("No hay productos en %s.", models.CategoryLabel(category)), tgbotapi.NewInlineKeyboardMarkup(backRow()))
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			button("✏️ "+item.Name, "edit:"+item.ID),
			button("🗑", "del:"+item.ID),
		))
	}
	rows = append(rows, backRow())
	a.sendWithInline(chatID, formatMenuList(category, items), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (a *AdminBot) sendTestimonials(ctx context.Context, chatID int64) {
	data, err := a.content.Get(ctx)
	if err != nil {
		a.send(chatID, "❌ Error al cargar: "+err.Error())
		return
	}
	var b strings.Builder
	b.WriteString("💬 Testimonios — toca para eliminar:\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range data.Testimonials {
		fmt.Fprintf(&b, "• %s %s — %s\n", t.Name, strings.Repeat("⭐", t.Rating), t.Text)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("🗑 "+t.Name, "deltest:"+t.ID)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("➕ Agregar testimonio", "addtest")), backRow())
	a.sendWithInline(chatID, b.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (a *AdminBot) sendGallery(ctx context.Context, chatID int64) {
	data, err := a.content.Get(ctx)
	if err != nil {
		a.send(chatID, "❌ Error al cargar: "+err.Error())
		return
	}
	var b strings.Builder
	b.WriteString("🖼 Galería — toca para eliminar:\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, img := range data.Gallery {
		fmt.Fprintf(&b, "• %s (%s)\n", img.Alt, img.URL)
		label := img.Alt
		if label == "" {
			label = img.URL
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("🗑 "+label, "delimg:"+img.ID)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("➕ Agregar imagen", "addimg")), backRow())
	a.sendWithInline(chatID, b.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (a *AdminBot) sendExport(ctx context.Context, chatID int64) {
	b, err := a.content.Export(ctx)
	if err != nil {
		a.send(chatID, "❌ No se pudo exportar: "+err.Error())
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: services.ExportFileName, Bytes: b})
	doc.Caption = "⬇️ Copia de seguridad de los datos del café"
	if _, err := a.api.Send(doc); err != nil {
		log.Printf("admin bot export send error: %v", err)
	}
}

// handleImport downloads an uploaded JSON document and replaces the café
// data with it. Documents that do not parse are logged and ignored.
func (a *AdminBot) handleImport(ctx context.Context, chatID, userID int64, doc *tgbotapi.Document) {
	if st := a.getState(userID); st == nil || st.Step != stepImport {
		a.send(chatID, "Para importar, primero elige ⬆️ Importar en el panel.")
		return
	}
	a.clearState(userID)
	if doc.FileSize > maxImportSize {
		a.send(chatID, "❌ El archivo es demasiado grande.")
		return
	}
	body, err := a.download(ctx, doc.FileID)
	if err != nil {
		log.Printf("admin bot import download: %v", err)
		a.send(chatID, "❌ No se pudo descargar el archivo.")
		return
	}
	if _, err := a.content.Import(ctx, bytes.NewReader(body)); err != nil {
		log.Printf("admin bot import: %v", err)
		if errors.Is(err, services.ErrInvalidImport) {
			a.send(chatID, "❌ El archivo no es un JSON válido. Los datos no se modificaron.")
		} else {
			a.send(chatID, "❌ No se pudo importar.")
		}
		return
	}
	a.send(chatID, "✅ Datos importados.")
	a.sendPanel(chatID)
}

func (a *AdminBot) download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := a.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, downloadDeadline)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImportSize))
}

// parsePrice accepts "4.50", "4,50" and "$4.50".
func parsePrice(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if price < 0 {
		return 0, fmt.Errorf("negative price")
	}
	return price, nil
}

func parseRating(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, err
	}
	if n < 1 || n > 5 {
		return 0, fmt.Errorf("rating out of range: %d", n)
	}
	return n, nil
}

func formatMenuList(category string, items []models.MenuItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s — ✏️ editar, 🗑 eliminar:\n\n", models.CategoryLabel(category))
	for _, item := range items {
		fmt.Fprintf(&b, "• %s — $%.2f", item.Name, item.Price)
		if item.HasSizes() {
			names := make([]string, len(item.Sizes))
			for i, s := range item.Sizes {
				names[i] = fmt.Sprintf("%s $%.2f", s.Name, s.Price)
			}
			fmt.Fprintf(&b, " (%s)", strings.Join(names, ", "))
		}
		if item.Featured {
			b.WriteString(" ⭐")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatInfo(info models.Info) string {
	return fmt.Sprintf(
		"ℹ️ %s\n%s\n\n📞 %s\n💬 WhatsApp: %s\n📍 %s\n🕒 %s\n✉️ %s\n📷 %s\n👍 %s",
		info.Name, info.Slogan, info.Phone, info.WhatsApp, info.Address, info.Hours, info.Email,
		info.Social.Instagram, info.Social.Facebook,
	)
}
