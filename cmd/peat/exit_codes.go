package main

const (
	exitCodeSuccess   = 0
	exitCodeError     = 1
	exitCodeInterrupt = 130
)
