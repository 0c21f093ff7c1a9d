package app

import (
	"os"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/gookit/goutil/fsutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

func initLogger() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleLevel := zapcore.InfoLevel
	if Debug {
		consoleLevel = zapcore.DebugLevel
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), consoleLevel),
	}
	if logFile := AppConfig.LogConfig.LogFile; logFile != "" {
		if writer := openLogFile(logFile); writer != nil {
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writer, consoleLevel))
		}
	}
	if errFile := AppConfig.LogConfig.ErrFile; errFile != "" {
		if writer := openLogFile(errFile); writer != nil {
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writer, zapcore.ErrorLevel))
		}
	}
	Logger = zap.New(zapcore.NewTee(cores...))
}

func openLogFile(path string) zapcore.WriteSyncer {
	err := os.MkdirAll(filepath.Dir(path), fsutil.DefaultDirPerm)
	if err != nil {
		color.Error.Printf("failed to create log folder for %s %v\n", path, err)
		return nil
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		color.Error.Printf("failed to open log file %s %v\n", path, err)
		return nil
	}
	return zapcore.Lock(file)
}
