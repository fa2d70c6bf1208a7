package logx

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
}

type Logx struct {
	sugar *zap.SugaredLogger
}

var levelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
}

func LevelByString(lvl string) zapcore.Level {
	level, exist := levelMap[lvl]
	if !exist {
		return zapcore.InfoLevel
	}
	return level
}

// New builds a logger writing to w: console encoding for humans, JSON otherwise.
func New(w io.Writer, lvl zapcore.Level, console bool) *Logx {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.LevelKey = "LEVEL"
	encoderCfg.CallerKey = "CALLER"
	encoderCfg.TimeKey = "TIME"
	encoderCfg.MessageKey = "MESSAGE"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if console {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &Logx{sugar: logger.Sugar()}
}

// NewNop discards everything; handy in tests.
func NewNop() *Logx {
	return &Logx{sugar: zap.NewNop().Sugar()}
}

func (l *Logx) Debug(args ...interface{}) { l.sugar.Debug(args...) }
func (l *Logx) Debugf(template string, args ...interface{}) {
	l.sugar.Debugf(template, args...)
}
func (l *Logx) Info(args ...interface{}) { l.sugar.Info(args...) }
func (l *Logx) Infof(template string, args ...interface{}) {
	l.sugar.Infof(template, args...)
}
func (l *Logx) Warn(args ...interface{}) { l.sugar.Warn(args...) }
func (l *Logx) Warnf(template string, args ...interface{}) {
	l.sugar.Warnf(template, args...)
}
func (l *Logx) Error(args ...interface{}) { l.sugar.Error(args...) }
func (l *Logx) Errorf(template string, args ...interface{}) {
	l.sugar.Errorf(template, args...)
}

func (l *Logx) Sync() error { return l.sugar.Sync() }
