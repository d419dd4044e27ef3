package zeek

// Column describes one summary-row cell: a title, a rendering width and a
// renderer producing the display value from an entry.
type Column struct {
	Title  string
	Width  int
	Render func(Entry) Classified
}

// Schema is the fixed rendering definition for one log type. Expandable
// schemas carry a uid per record and list the fields shown in the expanded
// detail block.
type Schema struct {
	Type       string
	Expandable bool
	Columns    []Column
	DetailKeys []string
}

func plain(title string, width int, key string) Column {
	return Column{Title: title, Width: width, Render: func(e Entry) Classified {
		return Classified{Text: FormatField(e, key)}
	}}
}

func timestamp(width int) Column {
	return Column{Title: "Time", Width: width, Render: func(e Entry) Classified {
		return Classified{Text: FormatTimestamp(e, "ts")}
	}}
}

func endpoint(title string, width int, hostKey, portKey string) Column {
	return Column{Title: title, Width: width, Render: func(e Entry) Classified {
		return Classified{Text: FormatEndpoint(e, hostKey, portKey)}
	}}
}

var connSchema = Schema{
	Type:       "conn",
	Expandable: true,
	Columns: []Column{
		timestamp(19),
		endpoint("Source", 21, "id.orig_h", "id.orig_p"),
		endpoint("Destination", 21, "id.resp_h", "id.resp_p"),
		plain("Proto", 5, "proto"),
		plain("Service", 8, "service"),
		{Title: "Duration", Width: 9, Render: func(e Entry) Classified {
			return Classified{Text: FormatDuration(e, "duration")}
		}},
		{Title: "Bytes", Width: 10, Render: func(e Entry) Classified {
			orig, ok1 := e.Float("orig_bytes")
			resp, ok2 := e.Float("resp_bytes")
			if !ok1 && !ok2 {
				return Classified{Text: Placeholder}
			}
			return Classified{Text: FormatBytes(orig+resp, true)}
		}},
	},
	DetailKeys: []string{
		"uid", "conn_state", "history", "missed_bytes",
		"orig_bytes", "resp_bytes", "orig_pkts", "resp_pkts", "local_orig",
	},
}

var dnsSchema = Schema{
	Type:       "dns",
	Expandable: true,
	Columns: []Column{
		timestamp(19),
		endpoint("Source", 21, "id.orig_h", "id.orig_p"),
		plain("Query", 30, "query"),
		plain("Type", 6, "qtype_name"),
		{Title: "Answers", Width: 28, Render: func(e Entry) Classified {
			return Classified{Text: FormatMulti(e, "answers")}
		}},
		{Title: "Rcode", Width: 9, Render: func(e Entry) Classified {
			return ClassifyRcode(e, "rcode_name")
		}},
	},
	DetailKeys: []string{
		"uid", "proto", "trans_id", "rtt", "qclass_name", "qtype", "rcode",
		"answers", "TTLs", "AA", "TC", "RD", "RA", "rejected",
	},
}

var httpSchema = Schema{
	Type:       "http",
	Expandable: true,
	Columns: []Column{
		timestamp(19),
		endpoint("Source", 21, "id.orig_h", "id.orig_p"),
		plain("Method", 7, "method"),
		plain("Host", 24, "host"),
		plain("URI", 28, "uri"),
		{Title: "Status", Width: 6, Render: func(e Entry) Classified {
			return ClassifyStatus(e, "status_code")
		}},
	},
	DetailKeys: []string{
		"uid", "user_agent", "referrer", "version", "request_body_len",
		"response_body_len", "status_msg", "resp_mime_types", "orig_fuids", "resp_fuids",
	},
}

var sslSchema = Schema{
	Type:       "ssl",
	Expandable: true,
	Columns: []Column{
		timestamp(19),
		endpoint("Source", 21, "id.orig_h", "id.orig_p"),
		endpoint("Destination", 21, "id.resp_h", "id.resp_p"),
		plain("Server Name", 26, "server_name"),
		plain("Version", 8, "version"),
		plain("Established", 11, "established"),
	},
	DetailKeys: []string{
		"uid", "cipher", "curve", "resumed", "next_protocol",
		"validation_status", "cert_chain_fps",
	},
}

var filesSchema = Schema{
	Type: "files",
	Columns: []Column{
		timestamp(19),
		plain("Source", 20, "source"),
		plain("MIME Type", 20, "mime_type"),
		plain("Filename", 28, "filename"),
		{Title: "Size", Width: 10, Render: func(e Entry) Classified {
			return Classified{Text: FormatEntryBytes(e, "total_bytes")}
		}},
		plain("MD5", 32, "md5"),
	},
}

var noticeSchema = Schema{
	Type: "notice",
	Columns: []Column{
		timestamp(19),
		plain("Note", 28, "note"),
		plain("Message", 44, "msg"),
		plain("Source", 16, "src"),
		plain("Destination", 16, "dst"),
	},
}

var weirdSchema = Schema{
	Type: "weird",
	Columns: []Column{
		timestamp(19),
		plain("Name", 30, "name"),
		plain("Additional", 30, "addl"),
		plain("Source", 16, "id.orig_h"),
		plain("Notice", 6, "notice"),
	},
}

var schemas = map[string]Schema{
	"conn":   connSchema,
	"dns":    dnsSchema,
	"http":   httpSchema,
	"ssl":    sslSchema,
	"files":  filesSchema,
	"notice": noticeSchema,
	"weird":  weirdSchema,
}

// genericColumnLimit caps how many columns the fallback schema derives.
const genericColumnLimit = 8

// SchemaFor returns the rendering schema for a log type. Unknown types degrade
// to a generic schema derived from the first entry of the page; no error is
// ever raised.
func SchemaFor(logType string, first Entry) Schema {
	if s, ok := schemas[logType]; ok {
		return s
	}
	return genericSchema(logType, first)
}

// Known reports whether the log type has a fixed schema.
func Known(logType string) bool {
	_, ok := schemas[logType]
	return ok
}

func genericSchema(logType string, first Entry) Schema {
	s := Schema{Type: logType}
	for _, key := range first.DisplayKeys(genericColumnLimit) {
		k := key
		col := Column{Title: k, Width: 18, Render: func(e Entry) Classified {
			return Classified{Text: FormatField(e, k)}
		}}
		if k == "ts" {
			col = timestamp(19)
		}
		s.Columns = append(s.Columns, col)
	}
	return s
}
