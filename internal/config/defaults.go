package config

const (
	defaultConfigPath           = "~/.config/whisperbatch/config.toml"
	defaultInputDir             = "_input"
	defaultOutputRoot           = "."
	defaultHotwordsFile         = "hotwords.txt"
	defaultLanguage             = "ru"
	defaultDevice               = "auto"
	defaultUVXCommand           = "uvx"
	defaultWhisperXPackage      = "whisperx"
	defaultComputeType          = "float32"
	defaultVADMethod            = "silero"
	defaultCUDAIndexURL         = "https://download.pytorch.org/whl/cu128"
	defaultPyPIIndexURL         = "https://pypi.org/simple"
	defaultFFmpegBinary         = "ffmpeg"
	defaultFFprobeBinary        = "ffprobe"
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogFileMaxSizeMB     = 10
	defaultLogFileMaxBackups    = 3
	defaultLogFileMaxAgeDays    = 28
	defaultWatchSettleSeconds   = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:     defaultInputDir,
			OutputRoot:   defaultOutputRoot,
			HotwordsFile: defaultHotwordsFile,
		},
		Transcription: Transcription{
			Language: defaultLanguage,
			Device:   defaultDevice,
		},
		Engine: Engine{
			UVXCommand:    defaultUVXCommand,
			Package:       defaultWhisperXPackage,
			ComputeType:   defaultComputeType,
			VADMethod:     defaultVADMethod,
			CUDAIndexURL:  defaultCUDAIndexURL,
			PyPIIndexURL:  defaultPyPIIndexURL,
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format:         defaultLogFormat,
			Level:          defaultLogLevel,
			FileMaxSizeMB:  defaultLogFileMaxSizeMB,
			FileMaxBackups: defaultLogFileMaxBackups,
			FileMaxAgeDays: defaultLogFileMaxAgeDays,
		},
		Watch: Watch{
			SettleSeconds: defaultWatchSettleSeconds,
		},
	}
}
