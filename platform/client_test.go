/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package platform

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
)

const systemsResponse = `<?xml version='1.0'?>
<methodResponse>
<params>
<param>
<value><array><data>
<value><struct>
<member><name>name</name><value><string>node01</string></value></member>
<member><name>profile</name><value><string>centos7-x86_64</string></value></member>
<member><name>virt_cpus</name><value><int>2</int></value></member>
<member><name>netboot_enabled</name><value><boolean>1</boolean></value></member>
<member><name>kernel_options</name><value><struct>
<member><name>noacpi</name><value><string>~</string></value></member>
<member><name>quiet</name><value><string></string></value></member>
</struct></value></member>
<member><name>interfaces</name><value><struct>
<member><name>eth0</name><value><struct>
<member><name>mac_address</name><value><string>90:b1:1c:06:bf:56</string></value></member>
<member><name>dns_name</name><value><string></string></value></member>
<member><name>static</name><value><boolean>1</boolean></value></member>
</struct></value></member>
</struct></value></member>
</struct></value>
</data></array></value>
</param>
</params>
</methodResponse>`

const faultResponse = `<?xml version='1.0'?>
<methodResponse>
<fault>
<value><struct>
<member><name>faultCode</name><value><int>1</int></value></member>
<member><name>faultString</name><value><string>unknown remote method</string></value></member>
</struct></value>
</fault>
</methodResponse>`

var _ = Describe("XML-RPC query client", func() {
	var server *httptest.Server
	var methods []string

	BeforeEach(func() {
		methods = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "text/xml")
			switch {
			case strings.Contains(string(body), "<methodName>get_systems</methodName>"):
				methods = append(methods, "get_systems")
				_, _ = w.Write([]byte(systemsResponse))
			default:
				methods = append(methods, "other")
				_, _ = w.Write([]byte(faultResponse))
			}
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	It("should list and normalize systems", func() {
		client := NewXMLRPCClient(server.URL)
		systems, err := ListSystems(context.TODO(), client)
		Expect(err).ToNot(HaveOccurred())
		Expect(methods).To(Equal([]string{"get_systems"}))
		Expect(systems).To(HaveLen(1))
		Expect(systems[0].Name).To(Equal("node01"))
		Expect(systems[0].VirtCPUs).To(Equal("2"))
		Expect(systems[0].NetbootEnabled).To(BeTrue())
		Expect(systems[0].KernelOptions).To(Equal(v1.OptionMap{"noacpi": v1.FlagOption()}))
		Expect(systems[0].Interfaces["eth0"]).To(Equal(v1.InterfaceSettings{
			"mac_address": "90:b1:1c:06:bf:56",
			"static":      true,
		}))
	})

	It("should report faults as transport errors", func() {
		client := NewXMLRPCClient(server.URL)
		_, err := client.Query(context.TODO(), v1.KindProfile)
		Expect(err).To(HaveOccurred())
		Expect(common.IsTransportError(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("unknown remote method"))
	})

	It("should report unreachable endpoints as transport errors", func() {
		client := NewXMLRPCClient(server.URL)
		server.Close()
		_, err := client.Query(context.TODO(), v1.KindSystem)
		Expect(common.IsTransportError(err)).To(BeTrue())
	})

	It("should default the endpoint", func() {
		Expect(NewXMLRPCClient("").Endpoint).To(Equal(DefaultEndpoint))
	})
})
