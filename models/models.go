package models

type HashType string // @name HashType

type AccountAddress string // @name AccountAddress

// OpcodeType is the first 32 bits of a message body rendered as "0x%08x".
type OpcodeType string // @name OpcodeType

type Message struct {
	MsgHash     HashType        `json:"hash"`
	Source      *AccountAddress `json:"source"`
	Destination *AccountAddress `json:"destination"`
	Value       *int64          `json:"value,string"`
	FwdFee      *uint64         `json:"fwd_fee,string,omitempty"`
	ImportFee   *uint64         `json:"import_fee,string,omitempty"`
	CreatedLt   *uint64         `json:"created_lt,string,omitempty"`
	Opcode      *OpcodeType     `json:"opcode"`
	Bounce      *bool           `json:"bounce,omitempty"`
	Bounced     *bool           `json:"bounced,omitempty"`
} // @name Message

type TransactionDescr struct {
	Type      string `json:"type"`
	Aborted   *bool  `json:"aborted,omitempty"`
	Destroyed *bool  `json:"destroyed,omitempty"`
} // @name TransactionDescr

// Transaction is one node of a trace tree. Produced by the trace source,
// read-only here.
type Transaction struct {
	Account    AccountAddress   `json:"account"`
	Hash       HashType         `json:"hash"`
	Lt         int64            `json:"lt,string"`
	Now        int32            `json:"now"`
	TraceId    *HashType        `json:"trace_id,omitempty"`
	OrigStatus string           `json:"orig_status,omitempty"`
	EndStatus  string           `json:"end_status,omitempty"`
	TotalFees  int64            `json:"total_fees,string"`
	Descr      TransactionDescr `json:"description"`
	InMsg      *Message         `json:"in_msg"`
	OutMsgs    []*Message       `json:"out_msgs"`
} // @name Transaction

type TraceMeta struct {
	TraceState      string `json:"trace_state"`
	Messages        int64  `json:"messages"`
	Transactions    int64  `json:"transactions"`
	PendingMessages int64  `json:"pending_messages"`
} // @name TraceMeta

// Trace is the tree of transactions caused by one external message.
// TransactionsOrder is root-first: the first hash is the originating
// transaction.
type Trace struct {
	TraceId           *HashType                 `json:"trace_id"`
	ExternalHash      *HashType                 `json:"external_hash"`
	TraceMeta         TraceMeta                 `json:"trace_info"`
	IsIncomplete      bool                      `json:"is_incomplete"`
	TransactionsOrder []HashType                `json:"transactions_order,omitempty"`
	Transactions      map[HashType]*Transaction `json:"transactions,omitempty"`
} // @name Trace

type TracesResponse struct {
	Traces []Trace `json:"traces"`
} // @name TracesResponse
