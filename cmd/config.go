package main

import "time"

type Config struct {
	BufferSize        int           `env:"BUFFER_SIZE,required=true"`
	TriggerBufferSize int           `env:"TRIGGER_BUFFER_SIZE,required=true"`
	IdentityTimeout   time.Duration `env:"IDENTITY_TIMEOUT,default=1s"`
	FanoutTimeout     time.Duration `env:"FANOUT_TIMEOUT,default=5s"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,required=true"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,required=true"`
	Host              string        `env:"HOST,default=localhost"`
	Port              int           `env:"PORT,default=8080"`
	WelcomeUser       string        `env:"WELCOME_USER"`
	WelcomeText       string        `env:"WELCOME_TEXT"`
}
