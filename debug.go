// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug
// +build debug

package fm

import (
	"log"
	"os"
)

const _DEBUG bool = true
const _LOGLEVEL int = 1

func init() {
	log.SetOutput(os.Stdout)
}

// debugPanic reports an invariant violation. It is only ever reachable
// in a build compiled with the debug tag; the release build's variant
// (see nodebug.go) compiles this call away entirely.
func debugPanic(format string, a ...interface{}) {
	log.Panicf(format, a...)
}
