// Command kvs-client sends a single get/set/rm request to a kvs-server and
// prints the result.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gokvs/kvs/internal/kvclient"
	kvserrors "github.com/gokvs/kvs/pkg/errors"
	"github.com/gokvs/kvs/pkg/logger"
	"github.com/gokvs/kvs/pkg/options"
)

func main() {
	addr := flag.String("addr", options.DefaultAddr, "HOST:PORT of the server")
	flag.Parse()

	args := flag.Args()
	if err := run(*addr, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(addr string, args []string) error {
	if len(args) == 0 {
		return kvserrors.NewUnexpectedCommandError("")
	}

	verb := args[0]
	switch verb {
	case "get":
		if len(args) != 2 {
			return kvserrors.NewUnexpectedCommandError(verb)
		}
		return runGet(addr, args[1])

	case "set":
		if len(args) != 3 {
			return kvserrors.NewUnexpectedCommandError(verb)
		}
		return runSet(addr, args[1], args[2])

	case "rm":
		if len(args) != 2 {
			return kvserrors.NewUnexpectedCommandError(verb)
		}
		return runRemove(addr, args[1])

	default:
		return kvserrors.NewUnexpectedCommandError(verb)
	}
}

func runGet(addr, key string) error {
	log := logger.New("kvs-client")
	client, err := kvclient.Dial(addr, log)
	if err != nil {
		return err
	}
	defer client.Close()

	value, ok, err := client.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Key not found")
		return nil
	}
	fmt.Println(value)
	return nil
}

func runSet(addr, key, value string) error {
	log := logger.New("kvs-client")
	client, err := kvclient.Dial(addr, log)
	if err != nil {
		return err
	}
	defer client.Close()

	return client.Set(key, value)
}

func runRemove(addr, key string) error {
	log := logger.New("kvs-client")
	client, err := kvclient.Dial(addr, log)
	if err != nil {
		return err
	}
	defer client.Close()

	return client.Remove(key)
}
