package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/phuslu/log"

	"github.com/atb-as/webshop-e2e/internal/config"
	"github.com/atb-as/webshop-e2e/internal/stubshop"
)

var quiet = &log.Logger{Writer: &log.IOWriter{Writer: io.Discard}}

// mockHandler creates a simple test handler
func mockHandler(response string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(response))
	})
}

func createTestDeps(port string, shop http.Handler) ServerDependencies {
	return ServerDependencies{
		ServerConfig: config.ServerConfig{Port: port},
		Shop:         shop,
		Logger:       quiet,
	}
}

// startTestServer starts a server with the given dependencies and returns listener, server, and port
func startTestServer(t *testing.T, deps ServerDependencies) (net.Listener, *http.Server, int) {
	t.Helper()
	listener, server, err := StartServer(deps)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	return listener, server, port
}

// httpDo makes an HTTP request and returns response body and status
func httpDo(t *testing.T, method, url, body string) (string, int) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request to %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return string(b), resp.StatusCode
}

func TestStartServer_ServesStubShop(t *testing.T) {
	// GIVEN
	shop, err := stubshop.New(stubshop.NewState(), quiet)
	if err != nil {
		t.Fatalf("Failed to create shop: %v", err)
	}
	listener, server, port := startTestServer(t, createTestDeps("0", shop))
	defer listener.Close()
	defer server.Close()

	baseURL := fmt.Sprintf("http://localhost:%d", port)
	time.Sleep(50 * time.Millisecond)

	// THEN
	testCases := []struct {
		method   string
		path     string
		body     string
		status   int
		contains string
	}{
		{http.MethodGet, "/", "", http.StatusOK, "Mine billetter"},
		{http.MethodGet, "/profile", "", http.StatusOK, "Min profil"},
		{http.MethodPatch, "/webshop/v1/profile", `{"firstName":"Kari"}`, http.StatusOK, `"firstName":"Kari"`},
		{http.MethodGet, "/webshop/v1/consent", "", http.StatusOK, `"consentId":1186`},
		{http.MethodPost, "/webshop/v1/travelcard", `{"travelCardId":"3445454533634718"}`, http.StatusCreated, "3445454533634718"},
		{http.MethodGet, "/ticket/v2/recurring-payments", "", http.StatusOK, "Visa"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			body, status := httpDo(t, tc.method, baseURL+tc.path, tc.body)
			if status != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, status)
			}
			if !strings.Contains(body, tc.contains) {
				t.Errorf("Expected body to contain '%s', got '%s'", tc.contains, body)
			}
		})
	}
}

func TestStartServer_InvalidPort(t *testing.T) {
	listener, server, err := StartServer(createTestDeps("99999", mockHandler("shop")))

	if err == nil {
		listener.Close()
		server.Close()
		t.Error("Expected error for invalid port, got nil")
	}
}

func TestStartServer_PortAlreadyInUse(t *testing.T) {
	// GIVEN
	existingListener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to create test listener: %v", err)
	}
	defer existingListener.Close()
	port := existingListener.Addr().(*net.TCPAddr).Port

	// WHEN
	listener, server, err := StartServer(createTestDeps(fmt.Sprintf("%d", port), mockHandler("shop")))

	// THEN
	if err == nil {
		listener.Close()
		server.Close()
		t.Error("Expected error for port already in use, got nil")
	}
}

func TestStartServer_GracefulShutdown(t *testing.T) {
	// GIVEN
	listener, server, port := startTestServer(t, createTestDeps("0", mockHandler("shop")))
	defer listener.Close()

	time.Sleep(50 * time.Millisecond)
	if _, status := httpDo(t, http.MethodGet, fmt.Sprintf("http://localhost:%d/", port), ""); status != http.StatusOK {
		t.Fatal("Server not responding")
	}

	// WHEN
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		t.Errorf("Failed to shutdown server gracefully: %v", err)
	}

	// THEN
	time.Sleep(100 * time.Millisecond)
	if _, err := http.Get(fmt.Sprintf("http://localhost:%d/", port)); err == nil {
		t.Error("Expected error after shutdown, server still responding")
	}
}

func TestWaitForShutdown_Signals(t *testing.T) {
	for _, sig := range []os.Signal{syscall.SIGTERM, syscall.SIGINT} {
		t.Run(sig.String(), func(t *testing.T) {
			// GIVEN
			listener, server, _ := startTestServer(t, createTestDeps("0", mockHandler("shop")))
			defer listener.Close()

			shutdown := make(chan os.Signal, 1)

			// WHEN
			errCh := make(chan error, 1)
			go func() {
				errCh <- WaitForShutdown(server, shutdown, quiet)
			}()
			time.Sleep(50 * time.Millisecond)
			shutdown <- sig

			// THEN
			select {
			case err := <-errCh:
				if err != nil {
					t.Errorf("Expected nil error, got: %v", err)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("WaitForShutdown did not complete")
			}
		})
	}
}

func TestWaitForShutdown_WithActiveRequests(t *testing.T) {
	// GIVEN
	slowHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte("done"))
	})
	listener, server, port := startTestServer(t, createTestDeps("0", slowHandler))
	defer listener.Close()

	time.Sleep(50 * time.Millisecond)
	requestComplete := make(chan bool, 1)
	go func() {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/", port))
		if err == nil {
			resp.Body.Close()
		}
		requestComplete <- true
	}()
	time.Sleep(50 * time.Millisecond)

	shutdown := make(chan os.Signal, 1)

	// WHEN
	errCh := make(chan error, 1)
	go func() {
		errCh <- WaitForShutdown(server, shutdown, quiet)
	}()
	shutdown <- syscall.SIGTERM

	// THEN
	select {
	case <-requestComplete:
	case <-time.After(2 * time.Second):
		t.Error("Request did not complete in time")
	}
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Expected nil error, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForShutdown did not complete")
	}
}

func TestWaitForShutdownWithTimeout_ForcesClose(t *testing.T) {
	// GIVEN
	release := make(chan struct{})
	blockingHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
	})
	defer close(release)

	listener, server, port := startTestServer(t, createTestDeps("0", blockingHandler))
	defer listener.Close()

	for i := 0; i < 3; i++ {
		go func() {
			if resp, err := http.Get(fmt.Sprintf("http://localhost:%d/", port)); err == nil {
				resp.Body.Close()
			}
		}()
	}
	time.Sleep(100 * time.Millisecond)

	shutdown := make(chan os.Signal, 1)

	// WHEN
	errCh := make(chan error, 1)
	go func() {
		errCh <- WaitForShutdownWithTimeout(server, shutdown, time.Nanosecond, quiet)
	}()
	shutdown <- syscall.SIGTERM

	// THEN
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Expected nil error after forced close, got: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForShutdownWithTimeout did not complete")
	}
}

func TestRunServe_StartupFailure(t *testing.T) {
	if err := RunServe(createTestDeps("99999", mockHandler("shop"))); err == nil {
		t.Error("Expected error for invalid port, got nil")
	}
}
