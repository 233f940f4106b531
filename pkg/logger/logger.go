// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logger hands out the process-wide zap loggers. Commands grab one
// once at startup:
//
//	var log = logger.LogContainer.GetSimpleLogger()
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFile = "/tmp/bonsai-firmware.log"

var (
	LogContainer     logContainer
	loggerInit       sync.Once
	simpleLoggerInit sync.Once
)

type logContainer struct {
	logger       *zap.Logger
	simpleLogger *zap.SugaredLogger
}

// GetLogger returns the pointer to the logger and creates one if none exists
func (l *logContainer) GetLogger() *zap.Logger {
	loggerInit.Do(func() {
		l.logger = zap.New(getCore())
	})
	return l.logger
}

// GetSimpleLogger returns the pointer to the sugared logger and creates one
// if none exists
func (l *logContainer) GetSimpleLogger() *zap.SugaredLogger {
	simpleLoggerInit.Do(func() {
		l.simpleLogger = zap.New(getCore()).Sugar()
	})
	return l.simpleLogger
}

func getConsoleEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func getJsonEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.EpochTimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func getCore() zapcore.Core {
	// Logs go to stderr; stdout may be wired to the console stream.
	console := zapcore.NewCore(getConsoleEncoder(), zapcore.AddSync(os.Stderr), zapcore.InfoLevel)
	f, err := os.Create(logFile)
	if err != nil {
		// The file sink is best effort.
		return console
	}
	file := zapcore.NewCore(getJsonEncoder(), zapcore.AddSync(f), zapcore.InfoLevel)
	return zapcore.NewTee(console, file)
}
