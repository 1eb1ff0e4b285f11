package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyDownload          = "download"
	KeyProcessing        = "processing"
	KeyCancel            = "cancel"
	KeyOpen              = "open"
	KeyReveal            = "reveal"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadSettings  = "download_settings"
	KeyInterfaceSettings = "interface_settings"
	KeyDownloadDirectory = "download_directory"
	KeyFileName          = "file_name"
	KeyKeepExtension     = "keep_extension"
	KeyRequestTimeout    = "request_timeout"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyBrowse            = "browse"
	KeyEnterURL          = "enter_url"
	KeySettingsSaved     = "settings_saved"
	KeyBusyTitle         = "busy_title"
	KeyBusy              = "busy"
	KeyResolving         = "resolving"
	KeyDownloading       = "downloading"
	KeyDownloadCompleted = "download_completed"
	KeySavedTo           = "saved_to"
	KeyInvalidURL        = "invalid_url"
	KeyResolveFailed     = "resolve_failed"
	KeyFetchFailed       = "fetch_failed"
	KeyUnexpectedError   = "unexpected_error"
	KeyCancelled         = "cancelled"
	KeyTimedOut          = "timed_out"
	KeyStatusCompleted   = "status_completed"
	KeyStatusFailed      = "status_failed"
	KeyStatusCancelled   = "status_cancelled"
	KeyRecentClips       = "recent_clips"
	KeyErrorOpeningFile  = "error_opening_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Clip Downloader",
		KeyDownload:          "Download",
		KeyProcessing:        "Processing...",
		KeyCancel:            "Cancel",
		KeyOpen:              "Open",
		KeyReveal:            "Reveal",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadSettings:  "Download Settings",
		KeyInterfaceSettings: "Interface Settings",
		KeyDownloadDirectory: "Download Directory",
		KeyFileName:          "File Name",
		KeyKeepExtension:     "Add file extension",
		KeyRequestTimeout:    "Request Timeout (seconds, 0 = none)",
		KeyAutoReveal:        "Reveal saved clips in file manager",
		KeySave:              "Save",
		KeyBrowse:            "Browse",
		KeyEnterURL:          "Paste a Medal clip link (https://medal.tv/games/.../clips/...)",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyBusyTitle:         "Please wait",
		KeyBusy:              "currently processing a video, please wait.",
		KeyResolving:         "Looking up clip...",
		KeyDownloading:       "Downloading clip...",
		KeyDownloadCompleted: "Download completed",
		KeySavedTo:           "Saved to",
		KeyInvalidURL:        "Not a Medal clip link",
		KeyResolveFailed:     "Could not find the clip video",
		KeyFetchFailed:       "The clip video could not be downloaded",
		KeyUnexpectedError:   "Something went wrong while saving the clip",
		KeyCancelled:         "Download cancelled",
		KeyTimedOut:          "The request took too long and was stopped",
		KeyStatusCompleted:   "Completed",
		KeyStatusFailed:      "Failed",
		KeyStatusCancelled:   "Cancelled",
		KeyRecentClips:       "Recent clips",
		KeyErrorOpeningFile:  "Error opening file",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Загрузчик клипов",
		KeyDownload:          "Скачать",
		KeyProcessing:        "Обработка...",
		KeyCancel:            "Отмена",
		KeyOpen:              "Открыть",
		KeyReveal:            "Показать",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadSettings:  "Настройки загрузки",
		KeyInterfaceSettings: "Настройки интерфейса",
		KeyDownloadDirectory: "Папка загрузки",
		KeyFileName:          "Имя файла",
		KeyKeepExtension:     "Добавлять расширение файла",
		KeyRequestTimeout:    "Тайм-аут запроса (секунды, 0 = нет)",
		KeyAutoReveal:        "Показывать сохранённые клипы в файловом менеджере",
		KeySave:              "Сохранить",
		KeyBrowse:            "Обзор",
		KeyEnterURL:          "Вставьте ссылку на клип Medal (https://medal.tv/games/.../clips/...)",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyBusyTitle:         "Подождите",
		KeyBusy:              "видео уже обрабатывается, пожалуйста, подождите.",
		KeyResolving:         "Поиск клипа...",
		KeyDownloading:       "Загрузка клипа...",
		KeyDownloadCompleted: "Загрузка завершена",
		KeySavedTo:           "Сохранено в",
		KeyInvalidURL:        "Это не ссылка на клип Medal",
		KeyResolveFailed:     "Не удалось найти видео клипа",
		KeyFetchFailed:       "Не удалось скачать видео клипа",
		KeyUnexpectedError:   "Ошибка при сохранении клипа",
		KeyCancelled:         "Загрузка отменена",
		KeyTimedOut:          "Запрос выполнялся слишком долго и был остановлен",
		KeyStatusCompleted:   "Завершено",
		KeyStatusFailed:      "Ошибка",
		KeyStatusCancelled:   "Отменено",
		KeyRecentClips:       "Недавние клипы",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Clip Downloader",
		KeyDownload:          "Baixar",
		KeyProcessing:        "Processando...",
		KeyCancel:            "Cancelar",
		KeyOpen:              "Abrir",
		KeyReveal:            "Mostrar",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadSettings:  "Configurações de Download",
		KeyInterfaceSettings: "Configurações de Interface",
		KeyDownloadDirectory: "Diretório de Download",
		KeyFileName:          "Nome do Arquivo",
		KeyKeepExtension:     "Adicionar extensão do arquivo",
		KeyRequestTimeout:    "Tempo limite (segundos, 0 = nenhum)",
		KeyAutoReveal:        "Mostrar clipes salvos no gerenciador de arquivos",
		KeySave:              "Salvar",
		KeyBrowse:            "Navegar",
		KeyEnterURL:          "Cole um link de clipe do Medal (https://medal.tv/games/.../clips/...)",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyBusyTitle:         "Aguarde",
		KeyBusy:              "já existe um vídeo em processamento, aguarde.",
		KeyResolving:         "Procurando o clipe...",
		KeyDownloading:       "Baixando o clipe...",
		KeyDownloadCompleted: "Download concluído",
		KeySavedTo:           "Salvo em",
		KeyInvalidURL:        "Não é um link de clipe do Medal",
		KeyResolveFailed:     "Não foi possível encontrar o vídeo do clipe",
		KeyFetchFailed:       "Não foi possível baixar o vídeo do clipe",
		KeyUnexpectedError:   "Algo deu errado ao salvar o clipe",
		KeyCancelled:         "Download cancelado",
		KeyTimedOut:          "A solicitação demorou demais e foi interrompida",
		KeyStatusCompleted:   "Concluído",
		KeyStatusFailed:      "Falhou",
		KeyStatusCancelled:   "Cancelado",
		KeyRecentClips:       "Clipes recentes",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
	}
}
