package lessons

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
)

// EchoOverPipe connects a client and an upper-casing echo server over an
// in-memory, synchronous stream pair (net.Pipe) and returns the server's
// reply to msg.
//
// net.Pipe gives both ends of a net.Conn without any real network: every
// write blocks until the other side reads it, which makes the lesson both
// hermetic and deterministic. The server is a normal goroutine reading
// newline-delimited messages, exactly as it would from a TCP connection.
func EchoOverPipe(w io.Writer, msg string) (string, error) {
	client, server := net.Pipe()

	serverDone := make(chan error, 1)
	go func() {
		defer server.Close()
		line, err := bufio.NewReader(server).ReadString('\n')
		if err != nil {
			serverDone <- fmt.Errorf("server read: %w", err)
			return
		}
		_, err = fmt.Fprintf(server, "%s\n", strings.ToUpper(strings.TrimSuffix(line, "\n")))
		serverDone <- err
	}()

	fmt.Fprintf(w, "sent: %s\n", msg)
	if _, err := fmt.Fprintf(client, "%s\n", msg); err != nil {
		return "", fmt.Errorf("client write: %w", err)
	}

	reply, err := bufio.NewReader(client).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("client read: %w", err)
	}
	reply = strings.TrimSuffix(reply, "\n")
	fmt.Fprintf(w, "received: %s\n", reply)

	if err := <-serverDone; err != nil {
		return "", err
	}
	if err := client.Close(); err != nil {
		return "", fmt.Errorf("client close: %w", err)
	}
	fmt.Fprintln(w, "stream closed")

	return reply, nil
}

// RunStreams prints the transcript for lesson 12.
func RunStreams(w io.Writer) error {
	reply, err := EchoOverPipe(w, "ping")
	if err != nil {
		return fmt.Errorf("streams lesson failed: %w", err)
	}
	if reply != "PING" {
		return fmt.Errorf("streams lesson got reply %q, want %q", reply, "PING")
	}
	return nil
}
