package actors

import (
	"sync"
)

var terminateChan = make(chan struct{})
var waitGroup = &sync.WaitGroup{}
var shutdownOnce sync.Once

func SetTerminateChan(term chan struct{}) {
	terminateChan = term
}

func GetTerminateChan() chan struct{} {
	return terminateChan
}

// GetWaitGroup is used by long running goroutines so Shutdown can wait for them to finish.
func GetWaitGroup() *sync.WaitGroup {
	return waitGroup
}

// Shutdown closes the terminate channel and blocks until every registered goroutine has exited.
func Shutdown() {
	shutdownOnce.Do(func() {
		close(terminateChan)
	})
	waitGroup.Wait()
}
