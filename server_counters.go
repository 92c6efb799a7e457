package mocksmtpd

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

type wrapper struct {
	Original net.Conn
	server   *Server
}

func (w *wrapper) Read(p []byte) (n int, err error) {
	n, err = w.Original.Read(p)
	w.server.bytesRead.Add(uint64(n))
	return
}

func (w *wrapper) Write(p []byte) (n int, err error) {
	n, err = w.Original.Write(p)
	w.server.bytesWritten.Add(uint64(n))
	return
}

func (srv *Server) wrapWithCounters(conn net.Conn) (wrapped io.ReadWriter) {
	return &wrapper{Original: conn, server: srv}
}

// GetBytesWritten returns number of bytes written
func (srv *Server) GetBytesWritten() uint64 {
	return srv.bytesWritten.Load()
}

// GetBytesRead returns number of bytes read
func (srv *Server) GetBytesRead() uint64 {
	return srv.bytesRead.Load()
}

// GetTransactionsCount returns number of all transactions this server processed
func (srv *Server) GetTransactionsCount() uint64 {
	return srv.transactionsAll.Load()
}

// GetActiveTransactionsCount returns number of active transactions this server is processing
func (srv *Server) GetActiveTransactionsCount() int32 {
	return srv.transactionsActive.Load()
}

// GetMailsRecordedCount returns number of mails recorded since start or last ResetCounters call
func (srv *Server) GetMailsRecordedCount() uint64 {
	return srv.mailsRecorded.Load()
}

// ResetCounters resets counters
func (srv *Server) ResetCounters() {
	srv.bytesRead.Store(0)
	srv.bytesWritten.Store(0)
	srv.transactionsAll.Store(0)
	srv.mailsRecorded.Store(0)
}

// MetricsHandler returns http.HandlerFunc publishing counters in this format
// https://prometheus.io/docs/instrumenting/exposition_formats/
func (srv *Server) MetricsHandler() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ts := srv.lastTransactionStartedAt.Load()
		if ts == 0 {
			ts = time.Now().UnixMilli()
		}
		res.Header().Add("Content-Type", "text/plain; version=0.0.4")
		res.WriteHeader(http.StatusOK)
		fmt.Fprintf(res, "bytes_read{hostname=\"%s\"} %v %v\n",
			srv.Hostname, srv.GetBytesRead(), ts)
		fmt.Fprintf(res, "bytes_written{hostname=\"%s\"} %v %v\n",
			srv.Hostname, srv.GetBytesWritten(), ts)
		fmt.Fprintf(res, "active_transactions_count{hostname=\"%s\"} %v %v\n",
			srv.Hostname, srv.GetActiveTransactionsCount(), ts)
		fmt.Fprintf(res, "all_transactions_count{hostname=\"%s\"} %v %v\n",
			srv.Hostname, srv.GetTransactionsCount(), ts)
		fmt.Fprintf(res, "mails_recorded_count{hostname=\"%s\"} %v %v\n",
			srv.Hostname, srv.GetMailsRecordedCount(), ts)
	}
}
