package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"memscan/service"
	"net/http"
	"os"
	"time"

	e "memscan/error"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Client struct {
	addr    string
	url     string
	timeout time.Duration
	client  *http.Client
}

func NewClient(addr string) (*Client, error) {
	c := &Client{
		addr:    addr,
		url:     fmt.Sprintf("http://%s", addr),
		timeout: time.Second * 30,
	}
	c.client = &http.Client{Timeout: c.timeout}

	if !c.IsScanServer() {
		return nil, errors.Wrapf(e.NotScanServer, "%s", c.addr)
	}
	return c, nil
}

func (c *Client) SendExpr(cmdType service.CmdType, args string) (string, error) {
	rt, ok := cmdRoutes[cmdType]
	if !ok {
		return "", errors.Wrapf(e.CommandNotFound, "%d", cmdType)
	}

	resp, err := c.do(&doRequest{
		method: rt.method,
		path:   rt.path,
		expr:   cmdExpr(cmdType, args),
	})
	if err != nil {
		return "", err
	}

	if resp.Status != http.StatusOK {
		return "", errors.New(resp.Msg)
	}

	respStr, ok := resp.Data.(string)
	if !ok {
		return "", fmt.Errorf("unexpected response type %T", resp.Data)
	}

	return respStr, nil
}

func (c *Client) IsScanServer() bool {
	if c.addr == "" {
		return false
	}

	resp, err := c.do(&doRequest{
		method: http.MethodGet,
		path:   "/ping",
	})
	if err != nil {
		fmt.Println("client recv err: ", err)
		return false
	}

	return resp.Status == http.StatusOK
}

func cmdExpr(cmdType service.CmdType, args string) string {
	if args == "" {
		return cmdType.String()
	}
	return fmt.Sprintf("%s %s", cmdType, args)
}

type doRequest struct {
	method string
	path   string
	header http.Header
	expr   string
}

func (c *Client) jsonHeader() http.Header {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set(requestIDHeader, uuid.New().String())

	return header
}

func (c *Client) do(req *doRequest) (resp *response, err error) {
	url := c.url + req.path

	exr := newExpression(req.expr, os.Getpid())
	bs, err := json.Marshal(exr)
	if err != nil {
		return
	}

	bodyReader := bytes.NewReader(bs)
	r, err := http.NewRequest(req.method, url, bodyReader)
	if err != nil {
		return
	}

	if req.header == nil {
		r.Header = c.jsonHeader()
	} else {
		r.Header = req.header
	}

	res, err := c.client.Do(r)
	if err != nil {
		return
	}
	defer res.Body.Close()

	bs, err = io.ReadAll(res.Body)
	if err != nil {
		return
	}

	err = json.Unmarshal(bs, &resp)
	return
}
