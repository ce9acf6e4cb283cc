package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bft-labs/plog/pkg/client"
	"github.com/bft-labs/plog/pkg/log"
)

func newSendCommand(a *app) *cobra.Command {
	var whole bool

	cmd := &cobra.Command{
		Use:   "send [message...]",
		Short: "Send each argument, or each line of stdin, as one message",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(a.cfg.ClientConfig(), client.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer c.Close()

			s := &sendStats{client: c, logger: a.logger}
			switch {
			case len(args) > 0:
				for _, arg := range args {
					s.send([]byte(arg))
				}
			case whole:
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				s.send(b)
			default:
				if err := s.sendLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			return s.err()
		},
	}

	cmd.Flags().BoolVar(&whole, "whole", false, "send all of stdin as a single message")
	return cmd
}

// sendStats keeps going after a failed message and reports at the end.
type sendStats struct {
	client *client.Client
	logger log.Logger
	sent   int
	failed int
}

func (s *sendStats) send(msg []byte) {
	id, err := s.client.Send(msg)
	if err != nil {
		s.failed++
		s.logger.Error("send failed", log.Uint32("message_id", id), log.Err(err))
		return
	}
	s.sent++
	s.logger.Debug("sent", log.Uint32("message_id", id), log.Int("bytes", len(msg)))
}

func (s *sendStats) sendLines(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			s.send(bytes.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
}

func (s *sendStats) err() error {
	if s.failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d messages failed", s.failed, s.sent+s.failed)
}

