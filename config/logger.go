package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"htmlcoder/misc"
)

// RotateConfig enables size based rotation of file log. Ignored when debug
// report is requested since report needs single complete log.
type RotateConfig struct {
	MaxSizeMB  int `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int `yaml:"max_backups" validate:"gte=0"`
}

type LoggerConfig struct {
	Level       string       `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string       `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string       `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
	Rotate      RotateConfig `yaml:"rotate,omitempty"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

var logLevels = map[string]zapcore.Level{
	"debug":  zapcore.DebugLevel,
	"normal": zapcore.InfoLevel,
}

// Prepare returns our standard logger - configured zap logger for use by the program.
// When report is requested file log is forced to debug level and becomes
// part of the report.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {
	file := conf.FileLogger
	if rpt != nil {
		file.Level, file.Mode, file.Rotate = "debug", "overwrite", RotateConfig{}
	}

	cores := consoleCores(conf.ConsoleLogger.Level)

	var redirected string
	if lvl, ok := logLevels[file.Level]; ok {
		capturePanics(file, rpt)

		sink, name, err := file.open(rpt)
		if err != nil {
			return nil, err
		}
		if name != "" && name != file.Destination {
			redirected = name
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), sink, zap.NewAtomicLevelAt(lvl)))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if redirected != "" {
		// log was redirected - we need to report this
		log.Warn("Log file was redirected to new location", zap.String("location", redirected))
	}
	return log.Named(misc.GetAppName()), nil
}

// consoleCores splits console output: errors go to stderr, everything else
// allowed by level to stdout.
func consoleCores(level string) []zapcore.Core {
	lvl, ok := logLevels[level]
	if !ok {
		return nil
	}
	return []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stdout)), zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(l zapcore.Level) bool {
				return lvl <= l && l < zapcore.ErrorLevel
			})),
		zapcore.NewCore(newEncoder(consoleEncoderConfig(os.Stderr)), zapcore.Lock(os.Stderr),
			zap.LevelEnablerFunc(func(l zapcore.Level) bool {
				return l >= zapcore.ErrorLevel
			})),
	}
}

func openLogFile(name, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(name, flags, 0644)
}

// capturePanics sends runtime crash output next to the file log, or into
// temporary file when that is not possible.
func capturePanics(conf LoggerConfig, rpt *Report) {
	ef, err := openLogFile(filepath.Join(filepath.Dir(conf.Destination), misc.GetAppName()+"-panic.log"), conf.Mode)
	if err != nil {
		if ef, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log"); err != nil {
			// just quietly ignore
			return
		}
	}
	defer ef.Close()
	if debug.SetCrashOutput(ef, debug.CrashOptions{}) == nil {
		rpt.Store("panic.log", ef.Name())
	}
}

// open returns sink for file log and actual file name used.
func (conf LoggerConfig) open(rpt *Report) (zapcore.WriteSyncer, string, error) {
	if rot := conf.Rotate; rot.MaxSizeMB > 0 {
		lj := &lumberjack.Logger{
			Filename:   conf.Destination,
			MaxSize:    rot.MaxSizeMB,
			MaxBackups: rot.MaxBackups,
		}
		if conf.Mode != "append" {
			if err := lj.Rotate(); err != nil {
				return nil, "", fmt.Errorf("unable to rotate file log (%s): %w", conf.Destination, err)
			}
		}
		return zapcore.AddSync(lj), conf.Destination, nil
	}

	f, err := openLogFile(conf.Destination, conf.Mode)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err != nil {
			return nil, "", fmt.Errorf("unable to access file log destination (%s): %w", conf.Destination, err)
		}
	}
	rpt.Store("final.log", f.Name())
	return zapcore.Lock(f), f.Name(), nil
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

// consoleEnc drops verbose error details (wrapped chains, stack traces of
// multierr) when logging errors to console.
type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	res := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			f.Interface = errors.New(f.Interface.(error).Error())
		}
		res = append(res, f)
	}
	return c.Encoder.EncodeEntry(ent, res)
}
