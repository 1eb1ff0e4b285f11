package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/clip-downloader/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	downloadDirEntry *widget.Entry
	fileNameEntry    *widget.Entry
	keepExtCheck     *widget.Check
	timeoutEntry     *widget.Entry
	autoRevealCheck  *widget.Check
	languageSelect   *widget.Select
}

// ShowSettingsDialog builds and shows the settings dialog; onSaved runs after
// the user confirms
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window, onSaved)
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	// Download directory selection
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder(l.GetText(KeyDownloadDirectory))

	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.fileNameEntry = widget.NewEntry()
	sd.fileNameEntry.SetPlaceHolder(config.DefaultFileName)

	sd.keepExtCheck = widget.NewCheck(l.GetText(KeyKeepExtension), nil)

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder("0-" + strconv.Itoa(config.MaxRequestTimeout))

	sd.autoRevealCheck = widget.NewCheck(l.GetText(KeyAutoReveal), nil)

	// Language selection
	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyDownloadSettings)),
		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyDownloadDirectory)+":"),
		downloadDirRow,

		widget.NewLabel(l.GetText(KeyFileName)+":"),
		sd.fileNameEntry,
		sd.keepExtCheck,

		widget.NewLabel(l.GetText(KeyRequestTimeout)+":"),
		sd.timeoutEntry,

		widget.NewSeparator(),
		widget.NewLabel(l.GetText(KeyInterfaceSettings)),
		widget.NewSeparator(),

		sd.autoRevealCheck,
		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.fileNameEntry.SetText(sd.settings.GetFileName())
	sd.keepExtCheck.SetChecked(sd.settings.GetKeepExtension())
	sd.timeoutEntry.SetText(strconv.Itoa(sd.settings.GetRequestTimeoutSeconds()))
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// save copies the form values into settings
func (sd *SettingsDialog) save() {
	if dir := strings.TrimSpace(sd.downloadDirEntry.Text); dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	sd.settings.SetFileName(strings.TrimSpace(sd.fileNameEntry.Text))
	sd.settings.SetKeepExtension(sd.keepExtCheck.Checked)

	if timeoutStr := strings.TrimSpace(sd.timeoutEntry.Text); timeoutStr != "" {
		if seconds, err := strconv.Atoi(timeoutStr); err == nil {
			sd.settings.SetRequestTimeoutSeconds(seconds)
		}
	}

	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}
}
