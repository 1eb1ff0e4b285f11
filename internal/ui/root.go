package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/clip-downloader/internal/config"
	"github.com/ytget/clip-downloader/internal/download"
	"github.com/ytget/clip-downloader/internal/medal"
	"github.com/ytget/clip-downloader/internal/model"
	"github.com/ytget/clip-downloader/internal/platform"
	"github.com/ytget/clip-downloader/internal/submit"
)

// RootUI represents the main UI structure
type RootUI struct {
	app          fyne.App
	window       fyne.Window
	urlEntry     *widget.Entry
	downloadBtn  *widget.Button
	cancelBtn    *widget.Button
	settingsBtn  *widget.Button
	progressBar  *widget.ProgressBar
	historyLabel *widget.Label
	historyList  *widget.List

	controller   *submit.Controller
	downloadSvc  download.Downloader
	settings     *config.Settings
	localization *Localization

	// Recent submissions, newest first
	history      []*model.ClipTask
	historyMutex sync.Mutex

	// Progress update debouncing
	lastProgressUpdate time.Time
	progressMutex      sync.Mutex

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, controller *submit.Controller, downloadSvc download.Downloader) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		app:          app,
		window:       window,
		controller:   controller,
		downloadSvc:  downloadSvc,
		settings:     settings,
		localization: localization,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.applySettings()
	ui.controller.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

// applySettings pushes persisted settings into the download service and controller
func (ui *RootUI) applySettings() {
	downloadsDir := ui.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Printf("failed to ensure downloads dir %s: %v", downloadsDir, err)
	}

	ui.downloadSvc.SetSaver(platform.NewFileSaver(downloadsDir))
	ui.downloadSvc.SetFileName(ui.settings.GetFileName())
	ui.downloadSvc.SetKeepExtension(ui.settings.GetKeepExtension())
	ui.controller.SetTimeout(ui.settings.GetRequestTimeout())

	log.Printf("Settings applied: dir=%s name=%s keepExt=%v timeout=%v",
		downloadsDir, ui.settings.GetFileName(), ui.settings.GetKeepExtension(), ui.settings.GetRequestTimeout())
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = ui.validateURL
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.cancelBtn = widget.NewButton(ui.localization.GetText(KeyCancel), ui.onCancelClick)
	ui.cancelBtn.Importance = widget.LowImportance
	ui.cancelBtn.Hide()

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, ui.settingsBtn, container.NewHBox(ui.cancelBtn, ui.downloadBtn), ui.urlEntry)

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Hide()

	// Notification panel under URL input (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationContainer = container.NewPadded(ui.notificationLabel)
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(topPanel, ui.progressBar, ui.notificationContainer)

	ui.historyLabel = widget.NewLabel(ui.localization.GetText(KeyRecentClips))
	ui.historyLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.historyList = widget.NewList(
		func() int {
			ui.historyMutex.Lock()
			defer ui.historyMutex.Unlock()
			return len(ui.history)
		},
		func() fyne.CanvasObject { return ui.createHistoryItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateHistoryItem(id, obj) },
	)

	history := container.NewBorder(ui.historyLabel, nil, nil, nil, ui.historyList)

	content := container.NewBorder(
		topCombined, // top
		nil,         // bottom
		nil,         // left
		nil,         // right
		history,     // center
	)

	ui.window.SetContent(content)
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.cancelBtn.SetText(ui.localization.GetText(KeyCancel))
	ui.historyLabel.SetText(ui.localization.GetText(KeyRecentClips))
	if ui.controller.IsProcessing() {
		ui.downloadBtn.SetText(ui.localization.GetText(KeyProcessing))
	} else {
		ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	}

	ui.historyList.Refresh()
}

// validateURL gives the entry a visual hint on the exact text that will be
// submitted; empty input is allowed
func (ui *RootUI) validateURL(input string) error {
	if input == "" || medal.IsValidURL(input) {
		return nil
	}
	return errors.New(ui.localization.GetText(KeyInvalidURL))
}

// onDownloadClick handles the download button click and Enter in the URL field
func (ui *RootUI) onDownloadClick() {
	if !ui.controller.Begin() {
		ui.showBusyAlert()
		return
	}
	ui.setProcessing(true)

	urlText := ui.urlEntry.Text
	log.Printf("Processing URL: %s", urlText)

	go func() {
		task := ui.runSubmission(urlText)
		fyne.Do(func() {
			ui.setProcessing(false)
			ui.onTaskFinished(task)
		})
	}()
}

// runSubmission runs the pipeline and leaves the controller Idle on every path
func (ui *RootUI) runSubmission(urlText string) *model.ClipTask {
	defer ui.controller.End()
	return ui.controller.Run(context.Background(), urlText)
}

// onCancelClick aborts the in-flight submission
func (ui *RootUI) onCancelClick() {
	if ui.controller.Cancel() {
		log.Printf("Cancel requested")
	}
}

// showBusyAlert tells the user a submission is already running
func (ui *RootUI) showBusyAlert() {
	dialog.ShowInformation(
		ui.localization.GetText(KeyBusyTitle),
		ui.localization.GetText(KeyBusy),
		ui.window,
	)
}

// setProcessing toggles the trigger affordances. Must run on the UI thread.
func (ui *RootUI) setProcessing(processing bool) {
	if processing {
		ui.downloadBtn.SetText(ui.localization.GetText(KeyProcessing))
		ui.downloadBtn.Disable()
		ui.cancelBtn.Show()
		ui.progressBar.SetValue(0)
		ui.progressBar.Show()
		return
	}

	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.downloadBtn.Enable()
	ui.cancelBtn.Hide()
	ui.progressBar.Hide()
}

// onTaskUpdate handles progress updates from the controller
func (ui *RootUI) onTaskUpdate(task *model.ClipTask) {
	if task.Status.IsFinished() {
		return
	}
	if task.Status == model.TaskStatusDownloading && task.BytesDone > 0 && !ui.shouldUpdateProgress() {
		return
	}

	var message string
	switch task.Status {
	case model.TaskStatusResolving:
		message = ui.localization.GetText(KeyResolving)
	case model.TaskStatusDownloading:
		message = ui.localization.GetText(KeyDownloading)
		if task.BytesDone > 0 {
			message += MiddleDotSeparator + task.GetSizeString()
			if task.BytesTotal > 0 {
				message += MiddleDotSeparator + fmt.Sprintf(ProgressLabelFormat, task.Percent)
			}
		}
	default:
		return
	}

	progress := task.Progress
	fyne.Do(func() {
		ui.progressBar.SetValue(progress)
	})
	ui.showNotification(message)
}

// shouldUpdateProgress limits how often byte-level progress reaches the UI
func (ui *RootUI) shouldUpdateProgress() bool {
	ui.progressMutex.Lock()
	defer ui.progressMutex.Unlock()

	now := time.Now()
	if now.Sub(ui.lastProgressUpdate) < ProgressUpdateDebounce {
		return false
	}
	ui.lastProgressUpdate = now
	return true
}

// onTaskFinished reports the outcome of a finished submission. Must run on the UI thread.
func (ui *RootUI) onTaskFinished(task *model.ClipTask) {
	if task == nil {
		return
	}
	log.Printf("Task finished: id=%s outcome=%s status=%s output=%s",
		task.ID, task.Outcome, task.Status, task.OutputPath)

	ui.addToHistory(task)
	ui.showNotification(ui.outcomeMessage(task))

	if task.Outcome != model.OutcomeSuccess {
		return
	}

	ui.urlEntry.SetText("")
	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyDownloadCompleted),
		Content: task.GetDisplayTitle(),
	})

	if ui.settings.GetAutoRevealOnComplete() && task.OutputPath != "" {
		log.Printf("Auto-revealing completed task %s: %s", task.ID, task.OutputPath)
		ui.onRevealFile(task.OutputPath)
	}
}

// outcomeMessage returns the notification text for a finished task
func (ui *RootUI) outcomeMessage(task *model.ClipTask) string {
	switch task.Outcome {
	case model.OutcomeSuccess:
		return ui.localization.GetText(KeySavedTo) + " " + task.OutputPath
	case model.OutcomeInvalidInput:
		return ui.localization.GetText(KeyInvalidURL)
	case model.OutcomeResolutionFailed:
		return ui.localization.GetText(KeyResolveFailed)
	case model.OutcomeFetchFailed:
		return ui.localization.GetText(KeyFetchFailed)
	case model.OutcomeTimedOut:
		return ui.localization.GetText(KeyTimedOut)
	case model.OutcomeCancelled:
		return ui.localization.GetText(KeyCancelled)
	default:
		return ui.localization.GetText(KeyUnexpectedError)
	}
}

// addToHistory prepends task to the recent clips, keeping MaxHistoryItems
func (ui *RootUI) addToHistory(task *model.ClipTask) {
	ui.historyMutex.Lock()
	ui.history = append([]*model.ClipTask{task}, ui.history...)
	if len(ui.history) > MaxHistoryItems {
		ui.history = ui.history[:MaxHistoryItems]
	}
	ui.historyMutex.Unlock()

	ui.historyList.Refresh()
}

// historyAt returns the task shown at row id
func (ui *RootUI) historyAt(id widget.ListItemID) *model.ClipTask {
	ui.historyMutex.Lock()
	defer ui.historyMutex.Unlock()
	if id < 0 || id >= len(ui.history) {
		return nil
	}
	return ui.history[id]
}

// createHistoryItem creates the template row for the recent clips list
func (ui *RootUI) createHistoryItem() fyne.CanvasObject {
	label := widget.NewLabel("")
	label.Truncation = fyne.TextTruncateEllipsis

	revealBtn := widget.NewButton(IconFolder, nil)
	revealBtn.Importance = widget.LowImportance
	openBtn := widget.NewButton(IconFile, nil)
	openBtn.Importance = widget.LowImportance

	return container.NewBorder(nil, nil, nil, container.NewHBox(revealBtn, openBtn), label)
}

// updateHistoryItem binds a recent clips row to its task
func (ui *RootUI) updateHistoryItem(id widget.ListItemID, obj fyne.CanvasObject) {
	task := ui.historyAt(id)
	row, ok := obj.(*fyne.Container)
	if task == nil || !ok || len(row.Objects) < 2 {
		return
	}

	label := row.Objects[0].(*widget.Label)
	actions := row.Objects[1].(*fyne.Container)
	revealBtn := actions.Objects[0].(*widget.Button)
	openBtn := actions.Objects[1].(*widget.Button)

	label.SetText(historyText(ui.localization, task))

	if task.Outcome == model.OutcomeSuccess && task.OutputPath != "" {
		path := task.OutputPath
		revealBtn.OnTapped = func() { ui.onRevealFile(path) }
		openBtn.OnTapped = func() { ui.onOpenFile(path) }
		revealBtn.Show()
		openBtn.Show()
		return
	}
	revealBtn.OnTapped = nil
	openBtn.OnTapped = nil
	revealBtn.Hide()
	openBtn.Hide()
}

// historyText renders one recent clips row
func historyText(l *Localization, task *model.ClipTask) string {
	icon := IconError
	switch task.Outcome {
	case model.OutcomeSuccess:
		icon = IconDone
	case model.OutcomeCancelled:
		icon = IconCancel
	}

	parts := []string{icon + " " + task.GetDisplayTitle(), statusText(l, task.Status)}
	if task.Outcome == model.OutcomeSuccess {
		parts = append(parts, task.GetSizeString())
	}
	return strings.Join(parts, MiddleDotSeparator)
}

// statusText returns the localized label of a finished status
func statusText(l *Localization, status model.TaskStatus) string {
	switch status {
	case model.TaskStatusCompleted:
		return l.GetText(KeyStatusCompleted)
	case model.TaskStatusCancelled:
		return l.GetText(KeyStatusCancelled)
	case model.TaskStatusFailed:
		return l.GetText(KeyStatusFailed)
	default:
		return status.String()
	}
}

// onRevealFile shows the file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onOpenFile opens the file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// showNotification displays a message in the notification panel under the URL input.
func (ui *RootUI) showNotification(message string) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.applySettings()
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	})
}
