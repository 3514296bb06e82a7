package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle            = "app_title"
	KeyPlay                = "play"
	KeyNews                = "news"
	KeySettings            = "settings"
	KeyPlayTitle           = "play_title"
	KeyPlayButton          = "play_button"
	KeyCancel              = "cancel"
	KeyUsernamePlaceholder = "username_placeholder"
	KeyVersion             = "version"
	KeyLoggedInAs          = "logged_in_as"
	KeyRecentLaunches      = "recent_launches"
	KeyNoLaunches          = "no_launches"
	KeyNewsTitle           = "news_title"
	KeyNewsBody            = "news_body"
	KeyRAM                 = "ram"
	KeyDemoMode            = "demo_mode"
	KeyGameDirectory       = "game_directory"
	KeyGameDirectoryHint   = "game_directory_hint"
	KeyJavaPath            = "java_path"
	KeyDownloadThreads     = "download_threads"
	KeyLanguage            = "language"
	KeyBrowse              = "browse"
	KeyOpenFolder          = "open_folder"
	KeyOpenLogs            = "open_logs"
	KeyClearHistory        = "clear_history"
	KeySave                = "save"
	KeySettingsSaved       = "settings_saved"
	KeyError               = "error"
	KeyWarning             = "warning"
	KeyVersionsFailed      = "versions_failed"
	KeyNoVersionSelected   = "no_version_selected"
	KeyInvalidUsername     = "invalid_username"
	KeyAlreadyRunning      = "already_running"
	KeyLaunchFailedTitle   = "launch_failed_title"
	KeyLaunchFailedMessage = "launch_failed_message"
	KeyGameRunningTitle    = "game_running_title"
	KeyGameRunningMessage  = "game_running_message"
	KeyStatusInstalling    = "status_installing"
	KeyStatusLaunching     = "status_launching"
	KeyStatusRunning       = "status_running"
	KeyStatusExited        = "status_exited"
	KeyStatusFailed        = "status_failed"
	KeyStatusCancelled     = "status_cancelled"
	KeyErrorOpeningFolder  = "error_opening_folder"
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
		"de": "Deutsch",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:            "FlatLauncher",
		KeyPlay:                "Play",
		KeyNews:                "News",
		KeySettings:            "Settings",
		KeyPlayTitle:           "Play Minecraft",
		KeyPlayButton:          "PLAY",
		KeyCancel:              "Cancel",
		KeyUsernamePlaceholder: "Enter your username",
		KeyVersion:             "Version:",
		KeyLoggedInAs:          "Logged in as: %s",
		KeyRecentLaunches:      "Recent launches",
		KeyNoLaunches:          "No launches yet",
		KeyNewsTitle:           "Latest News",
		KeyNewsBody:            "Minecraft 1.20 update is now available!\n\nNew features include:\n\n- Cherry blossom biome\n- Archaeology system\n- New mob: Sniffer",
		KeyRAM:                 "RAM Allocation (MB):",
		KeyDemoMode:            "Demo mode",
		KeyGameDirectory:       "Minecraft Directory:",
		KeyGameDirectoryHint:   "Directory changes apply after restart",
		KeyJavaPath:            "Java executable:",
		KeyDownloadThreads:     "Parallel downloads:",
		KeyLanguage:            "Language:",
		KeyBrowse:              "Browse",
		KeyOpenFolder:          "Open folder",
		KeyOpenLogs:            "Show game log",
		KeyClearHistory:        "Clear history",
		KeySave:                "Save",
		KeySettingsSaved:       "Settings saved successfully!",
		KeyError:               "Error",
		KeyWarning:             "Warning",
		KeyVersionsFailed:      "Failed to load Minecraft versions: %v",
		KeyNoVersionSelected:   "Please select a version",
		KeyInvalidUsername:     "Username must be at most 16 letters, digits or underscores",
		KeyAlreadyRunning:      "Minecraft is already being launched",
		KeyLaunchFailedTitle:   "Launch Failed",
		KeyLaunchFailedMessage: "Minecraft exited with an error. Please check the logs for more information.",
		KeyGameRunningTitle:    "Minecraft is running",
		KeyGameRunningMessage:  "Minecraft is still running. Are you sure you want to quit?",
		KeyStatusInstalling:    "Installing...",
		KeyStatusLaunching:     "Launching...",
		KeyStatusRunning:       "Minecraft is running",
		KeyStatusExited:        "Minecraft exited",
		KeyStatusFailed:        "Launch failed",
		KeyStatusCancelled:     "Launch cancelled",
		KeyErrorOpeningFolder:  "Error opening folder",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:            "FlatLauncher",
		KeyPlay:                "Играть",
		KeyNews:                "Новости",
		KeySettings:            "Настройки",
		KeyPlayTitle:           "Играть в Minecraft",
		KeyPlayButton:          "ИГРАТЬ",
		KeyCancel:              "Отмена",
		KeyUsernamePlaceholder: "Введите имя игрока",
		KeyVersion:             "Версия:",
		KeyLoggedInAs:          "Игрок: %s",
		KeyRecentLaunches:      "Последние запуски",
		KeyNoLaunches:          "Запусков ещё не было",
		KeyNewsTitle:           "Последние новости",
		KeyNewsBody:            "Доступно обновление Minecraft 1.20!\n\nНовое:\n\n- Биом вишнёвой рощи\n- Археология\n- Новый моб: нюхач",
		KeyRAM:                 "Память (МБ):",
		KeyDemoMode:            "Демо-режим",
		KeyGameDirectory:       "Папка Minecraft:",
		KeyGameDirectoryHint:   "Смена папки вступит в силу после перезапуска",
		KeyJavaPath:            "Исполняемый файл Java:",
		KeyDownloadThreads:     "Параллельных загрузок:",
		KeyLanguage:            "Язык:",
		KeyBrowse:              "Обзор",
		KeyOpenFolder:          "Открыть папку",
		KeyOpenLogs:            "Показать лог игры",
		KeyClearHistory:        "Очистить историю",
		KeySave:                "Сохранить",
		KeySettingsSaved:       "Настройки успешно сохранены!",
		KeyError:               "Ошибка",
		KeyWarning:             "Внимание",
		KeyVersionsFailed:      "Не удалось загрузить версии Minecraft: %v",
		KeyNoVersionSelected:   "Выберите версию",
		KeyInvalidUsername:     "Имя: не более 16 латинских букв, цифр или подчёркиваний",
		KeyAlreadyRunning:      "Minecraft уже запускается",
		KeyLaunchFailedTitle:   "Ошибка запуска",
		KeyLaunchFailedMessage: "Minecraft завершился с ошибкой. Подробности в логах.",
		KeyGameRunningTitle:    "Minecraft запущен",
		KeyGameRunningMessage:  "Minecraft всё ещё работает. Вы уверены, что хотите выйти?",
		KeyStatusInstalling:    "Установка...",
		KeyStatusLaunching:     "Запуск...",
		KeyStatusRunning:       "Minecraft запущен",
		KeyStatusExited:        "Minecraft завершён",
		KeyStatusFailed:        "Ошибка запуска",
		KeyStatusCancelled:     "Запуск отменён",
		KeyErrorOpeningFolder:  "Ошибка открытия папки",
	}

	// German texts
	l.texts["de"] = map[string]string{
		KeyAppTitle:            "FlatLauncher",
		KeyPlay:                "Spielen",
		KeyNews:                "Neuigkeiten",
		KeySettings:            "Einstellungen",
		KeyPlayTitle:           "Minecraft spielen",
		KeyPlayButton:          "SPIELEN",
		KeyCancel:              "Abbrechen",
		KeyUsernamePlaceholder: "Spielername eingeben",
		KeyVersion:             "Version:",
		KeyLoggedInAs:          "Angemeldet als: %s",
		KeyRecentLaunches:      "Letzte Starts",
		KeyNoLaunches:          "Noch keine Starts",
		KeyNewsTitle:           "Neueste Nachrichten",
		KeyNewsBody:            "Das Minecraft-Update 1.20 ist verfügbar!\n\nNeu:\n\n- Kirschblütenbiom\n- Archäologie\n- Neuer Mob: Schnüffler",
		KeyRAM:                 "Arbeitsspeicher (MB):",
		KeyDemoMode:            "Demomodus",
		KeyGameDirectory:       "Minecraft-Verzeichnis:",
		KeyGameDirectoryHint:   "Verzeichniswechsel gilt nach einem Neustart",
		KeyJavaPath:            "Java-Programm:",
		KeyDownloadThreads:     "Parallele Downloads:",
		KeyLanguage:            "Sprache:",
		KeyBrowse:              "Durchsuchen",
		KeyOpenFolder:          "Ordner öffnen",
		KeyOpenLogs:            "Spielprotokoll zeigen",
		KeyClearHistory:        "Verlauf löschen",
		KeySave:                "Speichern",
		KeySettingsSaved:       "Einstellungen gespeichert!",
		KeyError:               "Fehler",
		KeyWarning:             "Warnung",
		KeyVersionsFailed:      "Minecraft-Versionen konnten nicht geladen werden: %v",
		KeyNoVersionSelected:   "Bitte eine Version wählen",
		KeyInvalidUsername:     "Name: höchstens 16 Buchstaben, Ziffern oder Unterstriche",
		KeyAlreadyRunning:      "Minecraft wird bereits gestartet",
		KeyLaunchFailedTitle:   "Start fehlgeschlagen",
		KeyLaunchFailedMessage: "Minecraft wurde mit einem Fehler beendet. Details stehen im Protokoll.",
		KeyGameRunningTitle:    "Minecraft läuft",
		KeyGameRunningMessage:  "Minecraft läuft noch. Wirklich beenden?",
		KeyStatusInstalling:    "Installation...",
		KeyStatusLaunching:     "Start...",
		KeyStatusRunning:       "Minecraft läuft",
		KeyStatusExited:        "Minecraft beendet",
		KeyStatusFailed:        "Start fehlgeschlagen",
		KeyStatusCancelled:     "Start abgebrochen",
		KeyErrorOpeningFolder:  "Fehler beim Öffnen des Ordners",
	}
}
