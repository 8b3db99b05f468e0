package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/PromiseAll/memory-tool/service"
)

type Client struct {
	addr    string
	url     string
	timeout time.Duration
}

func NewClient(addr string) (*Client, error) {
	c := &Client{
		addr:    addr,
		url:     fmt.Sprintf("http://%s", addr),
		timeout: time.Second * 30,
	}

	if !c.IsProbeServer() {
		return nil, fmt.Errorf("%s is not a memory-tool server", c.addr)
	}
	return c, nil
}

func (c *Client) SendExpr(cmdType service.CmdType, args string) (string, error) {
	var method, path, cmd string
	switch cmdType {
	case service.Write:
		cmd = "write"
		method = http.MethodPost
		path = "/write"
	case service.Chain:
		cmd = "chain"
		method = http.MethodGet
		path = "/chain"
	case service.Inst:
		cmd = "inst"
		method = http.MethodGet
		path = "/inst"
	case service.Patch:
		cmd = "patch"
		method = http.MethodPost
		path = "/patch"
	case service.Nop:
		cmd = "nop"
		method = http.MethodPost
		path = "/nop"
	case service.Modules:
		cmd = "modules"
		method = http.MethodGet
		path = "/modules"
	case service.Read:
		fallthrough
	default:
		cmd = "read"
		method = http.MethodGet
		path = "/read"
	}

	resp, err := c.do(&doRequest{
		method: method,
		path:   path,
		expr:   fmt.Sprintf("%s %s", cmd, args),
	})
	if err != nil {
		return "", err
	}

	if resp.Status != http.StatusOK {
		return "", fmt.Errorf("%s", resp.Msg)
	}

	respStr, ok := resp.Data.(string)
	if !ok && resp.Data != nil {
		return "", fmt.Errorf("unexpected response type %T", resp.Data)
	}

	return respStr, nil
}

func (c *Client) IsProbeServer() bool {
	if c.addr == "" {
		return false
	}

	resp, err := c.do(&doRequest{
		method: http.MethodGet,
		path:   "/probe",
		expr:   "probe",
	})
	if err != nil {
		fmt.Println("client recv err: ", err)
		return false
	}

	return resp.Status == http.StatusOK
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

	http.DefaultClient.Timeout = c.timeout
	res, err := http.DefaultClient.Do(r)
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
