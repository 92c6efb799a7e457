package mocksmtpd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// MailHandler is called after mail is recorded, it can be used to notify tests or 3rd party
// services about delivery. Error returned is logged, it does not affect SMTP session.
type MailHandler func(ctx context.Context, transaction *Transaction, mail Mail) error

// Server defines the parameters for running the mock SMTP server
type Server struct {
	// Hostname is how we name ourselves, default is "localhost.localdomain"
	Hostname string
	// WelcomeMessage sets initial server banner. (default: "<hostname> ESMTP ready.")
	WelcomeMessage string
	// ReadTimeout is socket timeout for read operations. (default: 60s)
	ReadTimeout time.Duration
	// WriteTimeout is socket timeout for write operations. (default: 60s)
	WriteTimeout time.Duration
	// DataTimeout Socket timeout for DATA command (default: 5m)
	DataTimeout time.Duration

	// MaxConnections sets maximum number of concurrent connections, use -1 to disable. (default: 100)
	MaxConnections int
	// MaxMessageSize is limit both for SIZE parameter of MAIL FROM and for DATA. (default: 10240000)
	MaxMessageSize int
	// MaxRecipients is limit of RCPT TO calls for each envelope. (default: 100)
	MaxRecipients int

	// AddressValidator checks addresses of MAIL FROM and RCPT TO (default: ValidEmailAddress)
	AddressValidator AddressValidatorFunc
	// Behaviors are mock responses configured by tests, they are consulted by default Recorder
	Behaviors *Behaviors
	// Repository stores recorded mails (default: MemoryRepository)
	Repository Repository
	// RecorderFactory creates Recorder for each mail transaction (default: MailRecorder
	// using Behaviors and Repository)
	RecorderFactory RecorderFactory
	// MailHandlers are called after each mail is recorded
	MailHandlers []MailHandler

	// Logger is interface being used as protocol/recorder/errors logger
	Logger Logger
	// Tracer is OpenTelemetry tracer, spans are not recorded if it is nil
	Tracer trace.Tracer

	// mu guards doneChan and makes closing it and listener atomic from
	// perspective of Serve()
	mu         sync.Mutex
	doneChan   chan struct{}
	listener   *net.Listener
	waitgrp    sync.WaitGroup
	inShutdown atomic.Bool

	bytesRead                atomic.Uint64
	bytesWritten             atomic.Uint64
	transactionsAll          atomic.Uint64
	transactionsActive       atomic.Int32
	mailsRecorded            atomic.Uint64
	lastTransactionStartedAt atomic.Int64
}

// NewRecorder creates Recorder for transaction using RecorderFactory
func (srv *Server) NewRecorder(transaction *Transaction) Recorder {
	if srv.RecorderFactory != nil {
		return srv.RecorderFactory(transaction)
	}
	return &MailRecorder{
		Behaviors:  srv.Behaviors,
		Repository: srv.Repository,
	}
}

// startTransaction takes network connection and wraps it into Transaction object to handle all remote
// client interactions via (E)SMTP protocol.
func (srv *Server) startTransaction(c net.Conn) (t *Transaction) {
	ctx, cancel := context.WithCancel(context.Background())
	id := ulid.Make().String()
	ctx, span := srv.Tracer.Start(ctx, "transaction",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("id", id)),
		trace.WithAttributes(attribute.String("remote_addr", c.RemoteAddr().String())),
	)
	counted := srv.wrapWithCounters(c)
	t = &Transaction{
		ID:        id,
		StartedAt: time.Now(),

		server:     srv,
		ServerName: srv.Hostname,
		Logger:     srv.Logger,
		Span:       span,

		conn:   c,
		reader: bufio.NewReader(counted),
		writer: bufio.NewWriter(counted),
		Addr:   c.RemoteAddr(),

		ctx:    ctx,
		cancel: cancel,
	}
	t.scanner = bufio.NewScanner(t.reader)
	srv.transactionsAll.Add(1)
	srv.lastTransactionStartedAt.Store(t.StartedAt.UnixMilli())
	return
}

// ListenAndServe starts the SMTP server and listens on the address provided
func (srv *Server) ListenAndServe(addr string) error {
	if srv.inShutdown.Load() {
		return ErrServerClosed
	}
	srv.configureDefaults()
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return srv.Serve(l)
}

// Serve starts the SMTP server and listens on the Listener provided
func (srv *Server) Serve(l net.Listener) error {
	if srv.inShutdown.Load() {
		return ErrServerClosed
	}
	srv.configureDefaults()
	l = &onceCloseListener{Listener: l}
	defer l.Close()
	srv.mu.Lock()
	srv.listener = &l
	srv.mu.Unlock()
	var limiter chan struct{}
	if srv.MaxConnections > 0 {
		limiter = make(chan struct{}, srv.MaxConnections)
	}
	for {
		conn, e := l.Accept()
		if e != nil {
			select {
			case <-srv.getDoneChan():
				return ErrServerClosed
			default:
			}

			if ne, ok := e.(net.Error); ok && ne.Timeout() {
				time.Sleep(time.Second)
				continue
			}
			return e
		}
		transaction := srv.startTransaction(conn)
		srv.waitgrp.Add(1)
		go func() {
			defer srv.waitgrp.Done()
			if limiter != nil {
				select {
				case limiter <- struct{}{}:
					srv.runTransaction(transaction)
					<-limiter
				default:
					transaction.reject()
					srv.Logger.Infof(transaction, "transaction is rejected, server is busy")
				}
			} else {
				srv.runTransaction(transaction)
			}
		}()
	}
}

func (srv *Server) runTransaction(transaction *Transaction) {
	srv.transactionsActive.Add(1)
	defer srv.transactionsActive.Add(-1)
	transaction.serve()
	srv.Logger.Infof(transaction, "transaction serving is finished")
}

// Shutdown instructs the server to shut down, starting by closing the
// associated listener. If wait is true, it will wait for the shutdown
// to complete. If wait is false, Wait must be called afterwards.
func (srv *Server) Shutdown(wait bool) error {
	var lnerr error
	srv.inShutdown.Store(true)

	// First close the listener
	srv.mu.Lock()
	if srv.listener != nil {
		lnerr = (*srv.listener).Close()
	}
	srv.closeDoneChanLocked()
	srv.mu.Unlock()

	// Now wait for all client connections to close
	if wait {
		srv.Wait()
	}

	return lnerr
}

// Wait waits for all client connections to close and the server to finish
// shutting down.
func (srv *Server) Wait() error {
	if !srv.inShutdown.Load() {
		return errors.New("server has not been shutdown")
	}
	srv.waitgrp.Wait()
	return nil
}

// Address returns the listening address of the server
func (srv *Server) Address() net.Addr {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return (*srv.listener).Addr()
}

func (srv *Server) configureDefaults() {
	if srv.MaxMessageSize == 0 {
		srv.MaxMessageSize = 10240000
	}
	if srv.MaxConnections == 0 {
		srv.MaxConnections = 100
	}
	if srv.MaxRecipients == 0 {
		srv.MaxRecipients = 100
	}
	if srv.ReadTimeout == 0 {
		srv.ReadTimeout = time.Second * 60
	}
	if srv.WriteTimeout == 0 {
		srv.WriteTimeout = time.Second * 60
	}
	if srv.DataTimeout == 0 {
		srv.DataTimeout = time.Minute * 5
	}
	if srv.Hostname == "" {
		srv.Hostname = "localhost.localdomain"
	}
	if srv.WelcomeMessage == "" {
		srv.WelcomeMessage = fmt.Sprintf("%s ESMTP ready.", srv.Hostname)
	}
	if srv.AddressValidator == nil {
		srv.AddressValidator = ValidEmailAddress
	}
	if srv.Behaviors == nil {
		srv.Behaviors = &Behaviors{}
	}
	if srv.Repository == nil {
		srv.Repository = &MemoryRepository{}
	}
	if srv.Tracer == nil {
		srv.Tracer = noop.NewTracerProvider().Tracer("mocksmtpd")
	}
	if srv.Logger == nil {
		srv.Logger = &DefaultLogger{
			Logger: log.Default(),
			Level:  InfoLevel,
		}
	}
}

// From net/http/server.go

func (srv *Server) getDoneChan() <-chan struct{} {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.getDoneChanLocked()
}

func (srv *Server) getDoneChanLocked() chan struct{} {
	if srv.doneChan == nil {
		srv.doneChan = make(chan struct{})
	}
	return srv.doneChan
}

func (srv *Server) closeDoneChanLocked() {
	ch := srv.getDoneChanLocked()
	select {
	case <-ch:
		// Already closed. Don't close again.
	default:
		// Safe to close here. We're the only closer, guarded
		// by s.mu.
		close(ch)
	}
}

// onceCloseListener wraps a net.Listener, protecting it from
// multiple Close calls.
type onceCloseListener struct {
	net.Listener
	once     sync.Once
	closeErr error
}

// Close closes
func (oc *onceCloseListener) Close() error {
	oc.once.Do(oc.close)
	return oc.closeErr
}

func (oc *onceCloseListener) close() { oc.closeErr = oc.Listener.Close() }
